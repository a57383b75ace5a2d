package repository

import (
	"context"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores the header and all lines atomically and returns the
	// composed order read back inside the same transaction.
	Create(ctx context.Context, draft model.OrderDraft) (*model.ComposedOrder, error)
	Get(ctx context.Context, id int64) (*model.ComposedOrder, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.ComposedOrder, error)
	ListAll(ctx context.Context, page model.PageRequest) (*model.OrderPage, error)
	Summary(ctx context.Context, ownerID int64) (*model.OrderSummary, error)
}
