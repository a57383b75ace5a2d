package repository

import (
	"context"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

// ProductRepository is the read-only catalog port used by order validation.
type ProductRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}
