package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

const userColumns = `id, username, password_hash, role, name, email, address, city, postal_code, created_at`

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (username, password_hash, role, name, email, address, city, postal_code)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, created_at`
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	err := r.storage.pool.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Role,
		user.Name, user.Email, user.Address, user.City, user.PostalCode,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username=$1 OR (email <> '' AND email=$1)
                   ORDER BY (username=$1) DESC LIMIT 1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Name, &u.Email, &u.Address, &u.City, &u.PostalCode, &u.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}
