package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akashgouda-01/dept-changes/docs"
	"github.com/akashgouda-01/dept-changes/internal/config"
	"github.com/akashgouda-01/dept-changes/internal/database"
	"github.com/akashgouda-01/dept-changes/internal/database/migration"
	handlers "github.com/akashgouda-01/dept-changes/internal/http/handler"
	"github.com/akashgouda-01/dept-changes/internal/http/middleware"
	"github.com/akashgouda-01/dept-changes/internal/metrics"
	"github.com/akashgouda-01/dept-changes/internal/otel"
	"github.com/akashgouda-01/dept-changes/internal/repository/postgres"
	"github.com/akashgouda-01/dept-changes/internal/service"
	"github.com/akashgouda-01/dept-changes/internal/storage"
	"github.com/akashgouda-01/dept-changes/internal/verifier"
)

// @title Certificate Tracking API
// @version 1.0
// @BasePath /
func main() {
	ctx := context.Background()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Tracing first so DB and HTTP instrumentation pick up the global provider
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Export archive is optional; exports still stream when it is disabled.
	var archive storage.Archive
	if cfg.Archive.Enabled {
		archive, err = storage.NewMinIO(cfg.Archive)
		if err != nil {
			log.Fatalf("failed to initialize export archive: %v", err)
		}
	}

	mlVerifier, err := verifier.NewHTTP(cfg.Verifier)
	if err != nil {
		log.Fatalf("failed to initialize ml verifier: %v", err)
	}

	// Initialize repositories and services
	certRepo := postgres.NewCertificatePostgres(db)
	rosterRepo := postgres.NewRosterPostgres(db)
	certSvc := service.NewCertificateService(certRepo, mlVerifier, cfg.Sections)
	dashSvc := service.NewDashboardService(certRepo, rosterRepo)
	hodSvc := service.NewHodService(certRepo, rosterRepo, archive)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(registry); err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, cfg.Auth.AllowedDomain, certSvc, dashSvc, hodSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
