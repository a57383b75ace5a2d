package router

import (
	"go.uber.org/fx"

	"github.com/jsersan/ecommerce-backend-pdf/internal/app"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(
		func(f *app.ShopFacade) handlers.ShopFacade { return f },
		Setup,
	),
)
