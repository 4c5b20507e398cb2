package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shri-jewellery/storefront/internal/api/http"
	"github.com/shri-jewellery/storefront/internal/api/http/handlers"
	"github.com/shri-jewellery/storefront/internal/auth"
	"github.com/shri-jewellery/storefront/internal/config"
	"github.com/shri-jewellery/storefront/internal/events"
	"github.com/shri-jewellery/storefront/internal/integration"
	"github.com/shri-jewellery/storefront/internal/observability"
	"github.com/shri-jewellery/storefront/internal/persistence"
	"github.com/shri-jewellery/storefront/internal/repository"
	"github.com/shri-jewellery/storefront/internal/service"
	"github.com/shri-jewellery/storefront/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Configured() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	source := repository.NewJSONProductSource(cfg.App.ProductsPath)
	if pg.Configured() {
		source = repository.NewPostgresProductSource(pg.PoolHandle())
	}
	products, err := repository.NewProductRepository(ctx, source)
	if err != nil {
		logger.Fatal("failed to load product catalog", zap.Error(err))
	}

	redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redis.Close()

	sessionRepo := repository.NewMemorySessionRepository()
	if redis.Configured() {
		sessionRepo = repository.NewRedisSessionRepository(redis.Client, cfg.Session.TTL)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	notifier := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		Email:      integration.NewEmailSender(cfg.Mail),
		SMS:        integration.NewSMSSender(cfg.SMS),
		Metrics:    metrics,
		Logger:     logger,
	})
	worker.StartNotificationWorker(notifier, logger)

	catalogService := service.NewCatalogService(products)
	authService := service.NewAuthService(service.AuthDependencies{
		SessionRepo: sessionRepo,
		Dispatcher:  dispatcher,
		OTPCost:     cfg.Session.OTPCost,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  repository.NewMemoryOrderRepository(),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	imageService := service.NewImageService(integration.NewImageSearcher(cfg.Images), logger)
	chatService := service.NewChatService(integration.NewTextGenerator(cfg.Chat), logger)

	tokens := auth.NewTokenManager(cfg.App.SecretKey, cfg.Session.TTL)
	sessions := auth.NewSessionMiddleware(tokens, cfg.Session.CookieName, cfg.App.Env == "production", logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics:   handlers.NewMetricsHandler(metrics),
		Pages:     handlers.NewPagesHandler(authService, catalogService, orderService),
		Catalog:   handlers.NewCatalogHandler(catalogService),
		Auth:      handlers.NewAuthHandler(authService),
		Orders:    handlers.NewOrdersHandler(orderService),
		Assistant: handlers.NewAssistantHandler(imageService, chatService),
		Sessions:  sessions,
		Users:     authService,
	})

	logger.Info("catalog loaded", zap.Int("products", len(catalogService.ListProducts(ctx))))

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
