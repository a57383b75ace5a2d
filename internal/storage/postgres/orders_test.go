package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

var (
	headerColumns = []string{"id", "user_id", "order_date", "total", "uid", "username", "name", "email", "address", "city", "postal_code"}
	lineColumns   = []string{"id", "order_id", "product_id", "color", "quantity", "name", "found", "product_name", "price", "image"}
	orderDate     = time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
)

func headerRows(ids ...int64) *pgxmockv3.Rows {
	rows := pgxmockv3.NewRows(headerColumns)
	for _, id := range ids {
		rows.AddRow(id, int64(3), orderDate, decimal.RequireFromString("29.98"),
			int64(3), "ana", "Ana", "ana@example.com", "Main St 1", "Bilbao", "48001")
	}
	return rows
}

func strPtr(s string) *string { return &s }

func draftLineArgs(orderID int64) []any {
	return []any{orderID, int64(10), "Red", 2, strPtr("Mug"), orderID, int64(11), model.DefaultColor, 1, (*string)(nil)}
}

func TestOrderRepositoryCreate(t *testing.T) {
	draft := model.OrderDraft{
		OwnerID: 3,
		Date:    orderDate,
		Total:   decimal.RequireFromString("29.98"),
		Lines: []model.DraftLine{
			{ProductID: 10, Quantity: 2, Color: "Red", Name: strPtr("Mug")},
			{ProductID: 11, Quantity: 1, Color: model.DefaultColor},
		},
	}

	t.Run("commits header and lines", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := &orderRepository{storage: storage}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").WithArgs(int64(3), orderDate, pgxmockv3.AnyArg()).
			WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectExec("INSERT INTO order_lines").WithArgs(draftLineArgs(7)...).
			WillReturnResult(pgxmockv3.NewResult("INSERT", 2))
		mock.ExpectQuery("FROM orders o JOIN users u").WithArgs(int64(7)).WillReturnRows(headerRows(7))
		mock.ExpectQuery("FROM order_lines l LEFT JOIN products p").WithArgs([]int64{7}).WillReturnRows(
			pgxmockv3.NewRows(lineColumns).
				AddRow(int64(1), int64(7), int64(10), "Red", 2, strPtr("Mug"), true, "Mug", decimal.RequireFromString("9.99"), "mug.png").
				AddRow(int64(2), int64(7), int64(11), model.DefaultColor, 1, nil, true, "Cap", decimal.RequireFromString("10.00"), ""),
		)
		mock.ExpectCommit()

		order, err := repo.Create(context.Background(), draft)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.ID != 7 || len(order.Lines) != 2 || order.Owner == nil || order.Owner.Email != "ana@example.com" {
			t.Fatalf("unexpected order: %+v", order)
		}
		if order.Lines[1].DisplayName() != "Cap" {
			t.Fatalf("expected catalog name fallback, got %q", order.Lines[1].DisplayName())
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations not met: %v", err)
		}
	})

	t.Run("line failure rolls back", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := &orderRepository{storage: storage}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").WithArgs(int64(3), orderDate, pgxmockv3.AnyArg()).
			WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(8)))
		mock.ExpectExec("INSERT INTO order_lines").WithArgs(draftLineArgs(8)...).
			WillReturnError(&pgconn.PgError{Code: "23503", Detail: "Key (product_id)=(11) is not present in table \"products\"."})
		mock.ExpectRollback()

		_, err := repo.Create(context.Background(), draft)
		if !errors.Is(err, domainErrors.ErrIntegrity) {
			t.Fatalf("expected integrity error, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations not met: %v", err)
		}
	})

	t.Run("short insert rolls back", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := &orderRepository{storage: storage}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").WithArgs(int64(3), orderDate, pgxmockv3.AnyArg()).
			WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(9)))
		mock.ExpectExec("INSERT INTO order_lines").WithArgs(draftLineArgs(9)...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
		mock.ExpectRollback()

		if _, err := repo.Create(context.Background(), draft); err == nil {
			t.Fatal("expected error")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations not met: %v", err)
		}
	})

	t.Run("header failure rolls back", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := &orderRepository{storage: storage}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").WithArgs(int64(3), orderDate, pgxmockv3.AnyArg()).WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "orders_total_check"})
		mock.ExpectRollback()

		if _, err := repo.Create(context.Background(), draft); !errors.Is(err, domainErrors.ErrIntegrity) {
			t.Fatalf("expected integrity error, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations not met: %v", err)
		}
	})

	t.Run("empty draft", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := &orderRepository{storage: storage}

		if _, err := repo.Create(context.Background(), model.OrderDraft{OwnerID: 3}); !errors.Is(err, domainErrors.ErrEmptyOrder) {
			t.Fatalf("expected empty order error, got %v", err)
		}
	})
}

func TestBuildLinesInsert(t *testing.T) {
	query, args := buildLinesInsert(4, []model.DraftLine{
		{ProductID: 1, Quantity: 1, Color: "Blue"},
		{ProductID: 2, Quantity: 3, Color: "Red"},
	})
	want := `INSERT INTO order_lines (order_id, product_id, color, quantity, name) VALUES ($1, $2, $3, $4, $5), ($6, $7, $8, $9, $10)`
	if query != want {
		t.Fatalf("unexpected query:\n%s", query)
	}
	if len(args) != 10 || args[5] != int64(4) || args[6] != int64(2) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestOrderRepositoryGet(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	mock.ExpectQuery("FROM orders o JOIN users u").WithArgs(int64(7)).WillReturnRows(headerRows(7))
	mock.ExpectQuery("FROM order_lines l LEFT JOIN products p").WithArgs([]int64{7}).WillReturnRows(
		pgxmockv3.NewRows(lineColumns).
			AddRow(int64(1), int64(7), int64(10), "Red", 2, nil, false, "", decimal.Zero, ""),
	)
	order, err := repo.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Lines) != 1 || order.Lines[0].Product != nil {
		t.Fatalf("expected line without product, got %+v", order.Lines)
	}

	mock.ExpectQuery("FROM orders o JOIN users u").WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(context.Background(), 8); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM orders o JOIN users u").WithArgs(int64(9)).WillReturnRows(headerRows(9))
	mock.ExpectQuery("FROM order_lines l LEFT JOIN products p").WithArgs([]int64{9}).WillReturnError(errors.New("lines"))
	if _, err := repo.Get(context.Background(), 9); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryListByOwner(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	mock.ExpectQuery("WHERE o.user_id=").WithArgs(int64(3)).WillReturnRows(headerRows(12, 7))
	mock.ExpectQuery("FROM order_lines l LEFT JOIN products p").WithArgs([]int64{12, 7}).WillReturnRows(
		pgxmockv3.NewRows(lineColumns).
			AddRow(int64(1), int64(7), int64(10), "Red", 2, nil, true, "Mug", decimal.RequireFromString("9.99"), ""),
	)
	orders, err := repo.ListByOwner(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != 12 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
	if orders[0].Lines == nil || len(orders[0].Lines) != 0 || len(orders[1].Lines) != 1 {
		t.Fatalf("unexpected lines: %+v / %+v", orders[0].Lines, orders[1].Lines)
	}

	mock.ExpectQuery("WHERE o.user_id=").WithArgs(int64(4)).WillReturnRows(pgxmockv3.NewRows(headerColumns))
	orders, err = repo.ListByOwner(context.Background(), 4)
	if err != nil || orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", orders, err)
	}

	mock.ExpectQuery("WHERE o.user_id=").WithArgs(int64(5)).WillReturnError(errors.New("query"))
	if _, err := repo.ListByOwner(context.Background(), 5); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryListByOwnerRowsError(t *testing.T) {
	storage := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: errors.New("rows")}}}
	repo := &orderRepository{storage: storage}

	if _, err := repo.ListByOwner(context.Background(), 1); err == nil {
		t.Fatal("expected rows error")
	}
}

func TestOrderRepositoryListAll(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(int64(45)))
	mock.ExpectQuery("LIMIT").WithArgs(20, 20).WillReturnRows(headerRows(25))
	mock.ExpectQuery("FROM order_lines l LEFT JOIN products p").WithArgs([]int64{25}).WillReturnRows(pgxmockv3.NewRows(lineColumns))

	page, err := repo.ListAll(context.Background(), model.PageRequest{Page: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 45 || page.Page != 2 || page.Limit != 20 || page.Pages != 3 || len(page.Orders) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("count"))
	if _, err := repo.ListAll(context.Background(), model.PageRequest{}); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositorySummary(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(3)).
		WillReturnRows(pgxmockv3.NewRows([]string{"count", "sum"}).AddRow(int64(2), decimal.RequireFromString("59.96")))
	mock.ExpectQuery("FROM orders WHERE user_id=").WithArgs(int64(3)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "user_id", "order_date", "total"}).
			AddRow(int64(7), int64(3), orderDate, decimal.RequireFromString("29.98")))

	summary, err := repo.Summary(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalOrders != 2 || !summary.TotalSpent.Equal(decimal.RequireFromString("59.96")) || summary.LastOrder == nil || summary.LastOrder.ID != 7 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(4)).
		WillReturnRows(pgxmockv3.NewRows([]string{"count", "sum"}).AddRow(int64(0), decimal.Zero))
	summary, err = repo.Summary(context.Background(), 4)
	if err != nil || summary.TotalOrders != 0 || summary.LastOrder != nil {
		t.Fatalf("unexpected empty summary: %+v err=%v", summary, err)
	}

	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(5)).WillReturnError(errors.New("boom"))
	if _, err := repo.Summary(context.Background(), 5); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
