package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/insurance-product-service/internal/api/http"
	"github.com/spec-kit/insurance-product-service/internal/api/http/handlers"
	"github.com/spec-kit/insurance-product-service/internal/auth"
	"github.com/spec-kit/insurance-product-service/internal/cache"
	"github.com/spec-kit/insurance-product-service/internal/config"
	"github.com/spec-kit/insurance-product-service/internal/events"
	"github.com/spec-kit/insurance-product-service/internal/observability"
	"github.com/spec-kit/insurance-product-service/internal/persistence"
	"github.com/spec-kit/insurance-product-service/internal/repository"
	"github.com/spec-kit/insurance-product-service/internal/service"
	"github.com/spec-kit/insurance-product-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.JWTSecret == "" {
		// The verifier fails closed per request; warn loudly at boot too.
		logger.Warn("JWT_SECRET is not configured; all protected requests will fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, logger, cfg.Audit)
	worker.StartAuditWorker(auditService)

	productRepo := repository.NewProductRepository(pg.PoolHandle())
	productCache := cache.NewProductCache(redis.ClientHandle(), cfg.Cache.TTL(), logger)
	productService := service.NewProductService(productRepo, productCache, dispatcher)

	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(verifier, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	productsHandler := handlers.NewProductsHandler(productService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Products:       productsHandler,
		AuthMiddleware: authMiddleware,
		AdminRole:      cfg.Auth.AdminRole,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
