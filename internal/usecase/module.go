package usecase

import (
	"go.uber.org/fx"

	"github.com/jsersan/ecommerce-backend-pdf/internal/adapter/mailer"
	"github.com/jsersan/ecommerce-backend-pdf/internal/config"
	"github.com/jsersan/ecommerce-backend-pdf/internal/document"
	"github.com/jsersan/ecommerce-backend-pdf/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewAuthUseCase,
		NewAccessGuard,
		NewOrderValidator,
		NewOrderUseCase,
		newDocumentBuilder,
		func(d mailer.Dispatcher) Dispatcher { return d },
		func(r *metrics.Recorder) PipelineRecorder { return r },
	),
)

func newDocumentBuilder(cfg *config.Config) DocumentBuilder {
	return document.NewPDFBuilder(cfg.StoreName)
}
