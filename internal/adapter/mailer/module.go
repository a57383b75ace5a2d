package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/jsersan/ecommerce-backend-pdf/internal/config"
)

// Module exposes the delivery note dispatcher to the fx graph.
var Module = fx.Provide(newDispatcher)

type dispatcherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) (Dispatcher, error) {
	dispatcher, err := NewSMTPDispatcher(p.Config.Mail, p.Config.StoreName, p.Logger.With(slog.String("component", "mailer")))
	if err != nil {
		return nil, err
	}
	return dispatcher, nil
}
