package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/jsersan/ecommerce-backend-pdf/internal/config"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/repository"
)

// Module wires PostgreSQL storage and the shop repositories.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.ProductRepository { return s.Products() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger.With(slog.String("component", "storage")))
}

// registerLifecycle fails startup when the database is unreachable and
// closes the pool on stop.
func registerLifecycle(lc fx.Lifecycle, storage *Storage, logger *slog.Logger) {
	lc.Append(fx.StartStopHook(storage.HealthCheck, func() {
		storage.Close()
		logger.Info("database pool closed")
	}))
}
