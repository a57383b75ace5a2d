package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/repository"
)

// AccessGuard decides whether an acting user may see another user's orders.
// It never returns an error: a failed role lookup resolves to deny.
type AccessGuard struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewAccessGuard constructs AccessGuard.
func NewAccessGuard(users repository.UserRepository, logger *slog.Logger) *AccessGuard {
	return &AccessGuard{users: users, logger: logger}
}

// CanAccessOrder grants access to the owner and to elevated users.
func (g *AccessGuard) CanAccessOrder(ctx context.Context, actorID, ownerID int64) bool {
	if actorID <= 0 {
		return false
	}
	if actorID == ownerID {
		return true
	}
	return g.IsElevated(ctx, actorID)
}

// IsElevated reports whether the actor holds the admin role.
func (g *AccessGuard) IsElevated(ctx context.Context, actorID int64) bool {
	if actorID <= 0 {
		return false
	}
	user, err := g.users.GetByID(ctx, actorID)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			g.logger.Warn("role lookup failed, denying access",
				slog.Int64("user_id", actorID), slog.Any("error", err))
		}
		return false
	}
	return user.Elevated()
}
