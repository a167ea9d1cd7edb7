package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campuscare/complaint-service/internal/api/http"
	"github.com/campuscare/complaint-service/internal/api/http/handlers"
	"github.com/campuscare/complaint-service/internal/auth"
	"github.com/campuscare/complaint-service/internal/config"
	"github.com/campuscare/complaint-service/internal/events"
	"github.com/campuscare/complaint-service/internal/observability"
	"github.com/campuscare/complaint-service/internal/persistence"
	"github.com/campuscare/complaint-service/internal/ratelimit"
	"github.com/campuscare/complaint-service/internal/repository"
	"github.com/campuscare/complaint-service/internal/service"
	"github.com/campuscare/complaint-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)

	var ticketStore repository.ResetTicketStore
	var limiter ratelimit.Limiter
	if redis.Ping(ctx) == nil {
		ticketStore = repository.NewRedisResetTicketStore(redis.Client, cfg.Auth.ResetTicketTTL())
		limiter = ratelimit.NewRedisFixedWindow(redis.Client, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	} else {
		logger.Warn("redis unavailable; using in-process reset tickets and rate limiting")
		ticketStore = repository.NewMemoryResetTicketStore(cfg.Auth.ResetTicketTTL())
		limiter = ratelimit.NewFixedWindow(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		TicketStore: ticketStore,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintRepo,
		Dispatcher:    dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	if pool != nil {
		if err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
			logger.Fatal("failed to seed admin account", zap.Error(err))
		}
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, limiter, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
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
