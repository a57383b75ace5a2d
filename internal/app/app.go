package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/jsersan/ecommerce-backend-pdf/internal/config"
)

// Module wires application services, the HTTP server, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewShopFacade,
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Config     *config.Config
}

// httpRunner serves the router in the background and asks fx to shut the
// application down if the listener fails.
type httpRunner struct {
	server     *http.Server
	shutdowner fx.Shutdowner
	logger     *slog.Logger
	cfg        *config.Config
}

func registerLifecycle(p lifecycleParams) {
	r := &httpRunner{server: p.Server, shutdowner: p.Shutdowner, logger: p.Logger, cfg: p.Config}
	p.Lifecycle.Append(fx.Hook{OnStart: r.start, OnStop: r.stop})
}

func (r *httpRunner) start(context.Context) error {
	r.logger.Info("starting shop",
		slog.String("addr", r.server.Addr),
		slog.String("store", r.cfg.StoreName),
		slog.Bool("mail_enabled", r.cfg.Mail.Enabled()))
	go r.serve()
	return nil
}

func (r *httpRunner) serve() {
	err := r.server.ListenAndServe()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}
	r.logger.Error("http server terminated", slog.Any("error", err))
	if shutdownErr := r.shutdowner.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
		r.logger.Warn("shutdown request rejected", slog.Any("error", shutdownErr))
	}
}

func (r *httpRunner) stop(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok && r.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.ShutdownTimeout)
		defer cancel()
	}
	if err := r.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	r.logger.Info("shop stopped")
	return nil
}
