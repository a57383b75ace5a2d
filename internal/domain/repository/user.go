package repository

import (
	"context"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	// GetByLogin matches either the username or the email address.
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
