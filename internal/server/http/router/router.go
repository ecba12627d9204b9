package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/kitkatcodeskitty/lms-migrate/internal/metrics"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/handlers"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. Response
// compression is limited to /api since the metrics handler negotiates its own.
func Setup(facade handlers.AdminFacade, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))

	healthHandler := handlers.NewHealthHandler(facade)
	authHandler := handlers.NewAuthHandler(facade)
	migrationHandler := handlers.NewMigrationHandler(facade, logger)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	api := engine.Group("/api")
	api.Use(middleware.DecompressRequest())
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	api.POST("/operator/login", authHandler.Login)

	migrations := api.Group("/migrations")
	migrations.Use(middleware.AuthRequired(facade))
	migrations.GET("", migrationHandler.Status)
	migrations.POST("/up", migrationHandler.Up)
	migrations.POST("/down", migrationHandler.Down)

	return engine
}
