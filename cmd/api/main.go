package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/labstock-backend/api/routes"
	"github.com/angelmondragon/labstock-backend/internal/analytics"
	"github.com/angelmondragon/labstock-backend/internal/auth"
	"github.com/angelmondragon/labstock-backend/internal/inventory"
	"github.com/angelmondragon/labstock-backend/internal/users"
	"github.com/angelmondragon/labstock-backend/pkg/auth/session"
	"github.com/angelmondragon/labstock-backend/pkg/config"
	"github.com/angelmondragon/labstock-backend/pkg/env"
	"github.com/angelmondragon/labstock-backend/pkg/instance"
	"github.com/angelmondragon/labstock-backend/pkg/logger"
	"github.com/angelmondragon/labstock-backend/pkg/metrics"
	"github.com/angelmondragon/labstock-backend/pkg/redis"
	"github.com/angelmondragon/labstock-backend/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Inventory.Location()
	if err != nil {
		return err
	}
	store := inventory.NewStore(inventory.WithLocation(loc))
	if cfg.Inventory.SeedDemoData {
		inventory.SeedDemo(store)
		logg.Info(ctx, "inventory.demo_seeded")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	inventoryMetrics := metrics.NewInventoryMetrics(registry)

	deps := routes.Dependencies{
		Config:      cfg,
		Logger:      logg,
		HTTPMetrics: httpMetrics,
		Gatherer:    registry,
	}

	var sessionManager *session.Manager
	if cfg.Redis.Enabled() {
		var redisClient *redis.Client
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		sessionManager, err = session.NewManager(redisClient, redisClient, cfg.JWT)
		if err != nil {
			return err
		}
		deps.RateLimiter = redisClient
		deps.Redis = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, sessions kept in memory and auth rate limiting disabled")
		memory := session.NewMemoryStore()
		sessionManager, err = session.NewManager(memory, memory, cfg.JWT)
		if err != nil {
			return err
		}
	}
	deps.Sessions = sessionManager

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(),
		Hasher:         security.NewHasher(cfg.Password),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		Logger:         logg,
	})
	if err != nil {
		return err
	}
	if _, err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		return err
	}
	deps.AuthService = authService

	inventoryService, err := inventory.NewService(inventory.ServiceParams{
		Store:   store,
		Logger:  logg,
		Metrics: inventoryMetrics,
	})
	if err != nil {
		return err
	}
	deps.InventoryService = inventoryService

	analyticsService, err := analytics.NewService(analytics.ServiceParams{
		Source:  inventoryService,
		Logger:  logg,
		Metrics: inventoryMetrics,
	})
	if err != nil {
		return err
	}
	deps.AnalyticsService = analyticsService

	addr := ":" + env.Get("PORT", cfg.App.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.ID(),
	})
	logg.Info(ctx, "starting api server")

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
