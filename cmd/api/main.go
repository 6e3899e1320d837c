package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/dashboard-service/internal/api/http"
	"github.com/spec-kit/dashboard-service/internal/api/http/handlers"
	"github.com/spec-kit/dashboard-service/internal/auth"
	"github.com/spec-kit/dashboard-service/internal/config"
	"github.com/spec-kit/dashboard-service/internal/events"
	"github.com/spec-kit/dashboard-service/internal/observability"
	"github.com/spec-kit/dashboard-service/internal/persistence"
	"github.com/spec-kit/dashboard-service/internal/repository"
	"github.com/spec-kit/dashboard-service/internal/service"
	"github.com/spec-kit/dashboard-service/internal/worker"
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

	pool := pg.PoolHandle()
	credentialRepo := repository.NewCredentialRepository(pool)
	rosterRepo := repository.NewRosterRepository(pool)
	newsRepo := repository.NewNewsRepository(pool)
	loginInfoStore := repository.NewLoginInfoStore(redis.Client)
	spotlightStore := repository.NewSpotlightStore(redis.Client)
	noticeStore := repository.NewNoticeStore(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()

	credentialService := service.NewCredentialService(*cfg, service.CredentialDependencies{
		CredentialRepo: credentialRepo,
		LoginInfoStore: loginInfoStore,
	}, logger)
	rosterService := service.NewRosterService(service.RosterDependencies{
		RosterRepo:     rosterRepo,
		CredentialRepo: credentialRepo,
		Dispatcher:     dispatcher,
	})
	newsService := service.NewNewsService(newsRepo, dispatcher)
	spotlightService := service.NewSpotlightService(spotlightStore, credentialRepo, cfg.Auth.BootstrapAdminName)
	notificationService := service.NewNotificationService(dispatcher, noticeStore, logger, cfg.Dashboard.WarningNoticeTTL())
	worker.StartNotificationWorker(notificationService)

	if err := credentialService.EnsureBootstrapAdmin(ctx); err != nil {
		logger.Fatal("failed to ensure bootstrap admin", zap.Error(err))
	}

	authMiddleware := auth.NewMiddleware(credentialService.TokenManager(), credentialRepo, cfg.Auth.BootstrapAdminName)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(credentialService),
		Roster:         handlers.NewRosterHandler(rosterService, credentialService),
		News:           handlers.NewNewsHandler(newsService),
		Spotlight:      handlers.NewSpotlightHandler(spotlightService, credentialService),
		Notices:        handlers.NewNoticeHandler(notificationService),
		AuthMiddleware: authMiddleware,
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
