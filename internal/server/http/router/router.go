package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/jsersan/ecommerce-backend-pdf/internal/config"
	"github.com/jsersan/ecommerce-backend-pdf/internal/metrics"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/handlers"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, logger *slog.Logger, recorder *metrics.Recorder, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(recorder))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedExtensions([]string{".pdf"})))

	if cfg.MetricsPath != "" {
		engine.GET(cfg.MetricsPath, gin.WrapH(recorder.Handler()))
	}

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")

	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", middleware.AuthRequired(facade), authHandler.Profile)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/summary", orderHandler.Summary)
	orders.GET("/user/:userId", orderHandler.ListByOwner)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/:id/document", orderHandler.Document)
	orders.POST("/:id/document", orderHandler.Resend)

	return engine
}
