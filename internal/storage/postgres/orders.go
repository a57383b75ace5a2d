package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

const (
	orderHeaderSelect = `SELECT o.id, o.user_id, o.order_date, o.total,
            u.id, u.username, u.name, u.email, u.address, u.city, u.postal_code
        FROM orders o JOIN users u ON u.id = o.user_id`

	orderLinesSelect = `SELECT l.id, l.order_id, l.product_id, l.color, l.quantity, l.name,
            p.id IS NOT NULL, COALESCE(p.name, ''), COALESCE(p.price, 0), COALESCE(p.image, '')
        FROM order_lines l LEFT JOIN products p ON p.id = l.product_id
        WHERE l.order_id = ANY($1)
        ORDER BY l.order_id, l.id`

	orderLineColumns = 5
)

// Create persists the order header and every line in one transaction, then
// re-reads the composed order through the same transaction.
func (r *orderRepository) Create(ctx context.Context, draft model.OrderDraft) (*model.ComposedOrder, error) {
	if len(draft.Lines) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	var composed *model.ComposedOrder
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var orderID int64
		const insertOrder = `INSERT INTO orders (user_id, order_date, total) VALUES ($1, $2, $3) RETURNING id`
		if err := tx.QueryRow(ctx, insertOrder, draft.OwnerID, draft.Date, draft.Total).Scan(&orderID); err != nil {
			return err
		}

		query, args := buildLinesInsert(orderID, draft.Lines)
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != int64(len(draft.Lines)) {
			return fmt.Errorf("inserted %d of %d order lines", tag.RowsAffected(), len(draft.Lines))
		}

		composed, err = fetchComposed(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return composed, nil
}

func buildLinesInsert(orderID int64, lines []model.DraftLine) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO order_lines (order_id, product_id, color, quantity, name) VALUES `)
	args := make([]any, 0, len(lines)*orderLineColumns)
	for i, line := range lines {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * orderLineColumns
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, orderID, line.ProductID, line.Color, line.Quantity, line.Name)
	}
	return sb.String(), args
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*model.ComposedOrder, error) {
	composed, err := fetchComposed(ctx, r.storage.pool, id)
	if err != nil {
		return nil, classify(err)
	}
	return composed, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.ComposedOrder, error) {
	const query = orderHeaderSelect + ` WHERE o.user_id=$1 ORDER BY o.order_date DESC, o.id DESC`
	orders, err := r.listComposed(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListAll(ctx context.Context, page model.PageRequest) (*model.OrderPage, error) {
	page = page.Normalize()

	var total int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, err
	}

	const query = orderHeaderSelect + ` ORDER BY o.order_date DESC, o.id DESC LIMIT $1 OFFSET $2`
	orders, err := r.listComposed(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	return &model.OrderPage{
		Orders: orders,
		Total:  total,
		Page:   page.Page,
		Limit:  page.Limit,
		Pages:  model.PageCount(total, page.Limit),
	}, nil
}

func (r *orderRepository) Summary(ctx context.Context, ownerID int64) (*model.OrderSummary, error) {
	summary := &model.OrderSummary{}
	const totals = `SELECT COUNT(*), COALESCE(SUM(total), 0) FROM orders WHERE user_id=$1`
	if err := r.storage.pool.QueryRow(ctx, totals, ownerID).Scan(&summary.TotalOrders, &summary.TotalSpent); err != nil {
		return nil, err
	}
	if summary.TotalOrders == 0 {
		return summary, nil
	}

	const last = `SELECT id, user_id, order_date, total FROM orders WHERE user_id=$1
                  ORDER BY order_date DESC, id DESC LIMIT 1`
	var order model.Order
	err := r.storage.pool.QueryRow(ctx, last, ownerID).Scan(&order.ID, &order.UserID, &order.Date, &order.Total)
	switch {
	case err == nil:
		summary.LastOrder = &order
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return nil, err
	}
	return summary, nil
}

func (r *orderRepository) listComposed(ctx context.Context, query string, args ...any) ([]model.ComposedOrder, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.ComposedOrder, 0)
	for rows.Next() {
		order, err := scanHeader(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	lines, err := loadLines(ctx, r.storage.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = linesOrEmpty(lines[orders[i].ID])
	}
	return orders, nil
}

func fetchComposed(ctx context.Context, q querier, id int64) (*model.ComposedOrder, error) {
	order, err := scanHeader(q.QueryRow(ctx, orderHeaderSelect+` WHERE o.id=$1`, id))
	if err != nil {
		return nil, err
	}
	lines, err := loadLines(ctx, q, []int64{id})
	if err != nil {
		return nil, err
	}
	order.Lines = linesOrEmpty(lines[id])
	return order, nil
}

func scanHeader(row pgx.Row) (*model.ComposedOrder, error) {
	var (
		order model.ComposedOrder
		owner model.OwnerSummary
	)
	err := row.Scan(
		&order.ID, &order.UserID, &order.Date, &order.Total,
		&owner.ID, &owner.Username, &owner.Name, &owner.Email, &owner.Address, &owner.City, &owner.PostalCode,
	)
	if err != nil {
		return nil, err
	}
	order.Owner = &owner
	return &order, nil
}

func loadLines(ctx context.Context, q querier, orderIDs []int64) (map[int64][]model.ComposedLine, error) {
	rows, err := q.Query(ctx, orderLinesSelect, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]model.ComposedLine, len(orderIDs))
	for rows.Next() {
		var (
			line    model.ComposedLine
			found   bool
			product model.ProductSummary
		)
		if err := rows.Scan(
			&line.ID, &line.OrderID, &line.ProductID, &line.Color, &line.Quantity, &line.Name,
			&found, &product.Name, &product.Price, &product.Image,
		); err != nil {
			return nil, err
		}
		if found {
			product.ID = line.ProductID
			line.Product = &product
		}
		result[line.OrderID] = append(result[line.OrderID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func linesOrEmpty(lines []model.ComposedLine) []model.ComposedLine {
	if lines == nil {
		return []model.ComposedLine{}
	}
	return lines
}
