package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/repository"
)

// Bounds of the orders.total NUMERIC(10,2) and order_lines.quantity INTEGER columns.
var maxOrderTotal = decimal.New(1, 8)

const maxLineQuantity = math.MaxInt32

// OrderValidator turns a raw submission into a draft, failing on the first
// offending line. It performs reads only.
type OrderValidator struct {
	products repository.ProductRepository
	now      func() time.Time
}

// NewOrderValidator constructs OrderValidator.
func NewOrderValidator(products repository.ProductRepository) *OrderValidator {
	return &OrderValidator{products: products, now: time.Now}
}

// Validate checks the total, the line count and then every line in order.
// Line failures are reported as *errors.LineError with a 1-based index.
func (v *OrderValidator) Validate(ctx context.Context, ownerID int64, sub model.OrderSubmission) (*model.OrderDraft, error) {
	total := sub.Total.Round(2)
	if !total.IsPositive() || total.GreaterThanOrEqual(maxOrderTotal) {
		return nil, domainErrors.ErrInvalidTotal
	}
	if len(sub.Lines) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	lines := make([]model.DraftLine, 0, len(sub.Lines))
	for i, req := range sub.Lines {
		line, err := v.validateLine(ctx, req)
		if err != nil {
			if reason, ok := err.(lineReason); ok {
				return nil, &domainErrors.LineError{Line: i + 1, Reason: reason.error}
			}
			return nil, err
		}
		lines = append(lines, line)
	}

	return &model.OrderDraft{
		OwnerID: ownerID,
		Date:    v.orderDate(sub.Date),
		Total:   total,
		Lines:   lines,
	}, nil
}

// lineReason marks a rejection attributable to the line itself, as opposed
// to a failed catalog lookup.
type lineReason struct{ error }

func (v *OrderValidator) validateLine(ctx context.Context, req model.LineRequest) (model.DraftLine, error) {
	if req.ProductID <= 0 {
		return model.DraftLine{}, lineReason{domainErrors.ErrInvalidProduct}
	}
	exists, err := v.products.Exists(ctx, req.ProductID)
	if err != nil {
		return model.DraftLine{}, fmt.Errorf("check product %d: %w", req.ProductID, err)
	}
	if !exists {
		return model.DraftLine{}, lineReason{domainErrors.ErrInvalidProduct}
	}
	if req.Quantity <= 0 || req.Quantity > maxLineQuantity {
		return model.DraftLine{}, lineReason{domainErrors.ErrInvalidQuantity}
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		return model.DraftLine{}, lineReason{domainErrors.ErrMissingColor}
	}

	var name *string
	if req.Name != nil {
		if trimmed := strings.TrimSpace(*req.Name); trimmed != "" {
			name = &trimmed
		}
	}
	return model.NewDraftLine(req.ProductID, req.Quantity, color, name), nil
}

func (v *OrderValidator) orderDate(requested *time.Time) time.Time {
	date := v.now()
	if requested != nil && !requested.IsZero() {
		date = *requested
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
