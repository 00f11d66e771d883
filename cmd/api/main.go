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

	httptransport "github.com/spec-kit/support-agent/internal/api/http"
	"github.com/spec-kit/support-agent/internal/api/http/handlers"
	"github.com/spec-kit/support-agent/internal/app"
	"github.com/spec-kit/support-agent/internal/auth"
	"github.com/spec-kit/support-agent/internal/config"
	"github.com/spec-kit/support-agent/internal/observability"
	"github.com/spec-kit/support-agent/internal/persistence"
	"github.com/spec-kit/support-agent/internal/ratelimit"
	"github.com/spec-kit/support-agent/internal/service"
	"github.com/spec-kit/support-agent/internal/worker"
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

	components, err := app.Build(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var counter ratelimit.Counter
	if redis.Enabled() {
		counter = ratelimit.NewRedisCounter(redis.Client)
	}
	limiter := ratelimit.NewLimiter(counter, cfg.RateLimit.PerMinute, time.Minute, logger.Named("ratelimit"))

	notifications := service.NewNotificationService(components.Dispatcher, logger.Named("notify"), cfg.Notification)
	notifyWorker := worker.NewNotificationWorker(notifications, logger.Named("worker"), 128)
	worker.StartNotificationWorker(ctx, components.Dispatcher, notifyWorker)

	authService := service.NewAuthService(cfg.Auth)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), cfg.Auth.Enabled)
	if !cfg.Auth.Enabled {
		logger.Warn("authentication disabled")
	}
	if hash := cfg.Auth.OperatorPasswordHash; hash != "" {
		if err := auth.CheckPasswordHash(hash); err != nil {
			logger.Warn("operator password hash unusable, logins will fail", zap.Error(err))
		}
	}

	server := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(server, logger, components.Metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(server, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, components.Agent.Model(), redis, components.Metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Assist:         handlers.NewAssistHandler(components.Agent, limiter, cfg.Agent.DefaultUserID),
		Priority:       handlers.NewPriorityHandler(components.Users),
		Directory:      handlers.NewDirectoryHandler(components.Docs, components.Users),
		Tickets:        handlers.NewTicketsHandler(components.Tickets),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("model", components.Agent.Model()))
		if err := server.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = server.ShutdownWithTimeout(10 * time.Second)
	cancel()
	notifyWorker.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
