package di

import (
	"go.uber.org/fx"

	"github.com/jsersan/ecommerce-backend-pdf/internal/adapter/mailer"
	"github.com/jsersan/ecommerce-backend-pdf/internal/app"
	"github.com/jsersan/ecommerce-backend-pdf/internal/config"
	"github.com/jsersan/ecommerce-backend-pdf/internal/logger"
	"github.com/jsersan/ecommerce-backend-pdf/internal/metrics"
	"github.com/jsersan/ecommerce-backend-pdf/internal/pkg/auth"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/router"
	"github.com/jsersan/ecommerce-backend-pdf/internal/storage/postgres"
	"github.com/jsersan/ecommerce-backend-pdf/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		metrics.Module,
		mailer.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
