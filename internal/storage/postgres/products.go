package postgres

import (
	"context"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

func (r *productRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, name, price, image FROM products WHERE id=$1`
	var p model.Product
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Image); err != nil {
		return nil, classify(err)
	}
	return &p, nil
}
