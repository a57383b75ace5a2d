package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/jsersan/ecommerce-backend-pdf/internal/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			fxLogger := &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
			fxLogger.UseLogLevel(slog.LevelDebug)
			return fxLogger
		}),
		di.Module(),
	)

	code := run(ctx, app)
	stop()
	os.Exit(code)
}
