// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carterperez-dev/gym-membership/internal/admin"
	"github.com/carterperez-dev/gym-membership/internal/attendance"
	"github.com/carterperez-dev/gym-membership/internal/auth"
	"github.com/carterperez-dev/gym-membership/internal/config"
	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/dashboard"
	"github.com/carterperez-dev/gym-membership/internal/events"
	"github.com/carterperez-dev/gym-membership/internal/health"
	"github.com/carterperez-dev/gym-membership/internal/member"
	"github.com/carterperez-dev/gym-membership/internal/middleware"
	"github.com/carterperez-dev/gym-membership/internal/payment"
	"github.com/carterperez-dev/gym-membership/internal/plan"
	"github.com/carterperez-dev/gym-membership/internal/server"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate", false, "apply migrations and exit")
	flag.Parse()

	if err := run(*configPath, *migrateOnly); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string, migrateOnly bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	//nolint:errcheck // .env is optional outside local development
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"timezone", cfg.App.Timezone,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if migrateOnly || cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		if migrateOnly {
			return nil
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}()

	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	publisher := events.Nop()
	if cfg.Kafka.Enabled {
		kafka, kafkaErr := events.NewKafkaPublisher(cfg.Kafka)
		if kafkaErr != nil {
			return kafkaErr
		}
		publisher = kafka
		logger.Info("kafka publisher connected",
			"brokers", cfg.Kafka.Brokers,
			"topic_prefix", cfg.Kafka.TopicPrefix,
		)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("event publisher close error", "error", err)
		}
	}()

	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	logger.Info("token verifier initialized",
		"algorithm", "ES256",
		"issuer", cfg.Auth.Issuer,
	)

	clock := core.NewClock(cfg.Location())

	planSvc := plan.NewService(plan.NewRepository(db.DB))
	memberSvc := member.NewService(member.NewRepository(db.DB), planSvc, clock, publisher)
	attendanceSvc := attendance.NewService(
		attendance.NewRepository(db.DB),
		memberSvc,
		clock,
		publisher,
	)
	paymentSvc := payment.NewService(db.DB, db, payment.NewStores, clock, publisher)
	dashboardSvc := dashboard.NewService(
		dashboard.NewRepository(db.DB),
		core.NewJSONCache(redis.Client, dashboard.CachePrefix),
		cfg.Dashboard.CacheTTL,
		clock,
	)
	memberSvc.InvalidateOnWrite(dashboardSvc)
	attendanceSvc.InvalidateOnWrite(dashboardSvc)
	paymentSvc.InvalidateOnWrite(dashboardSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)
	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Dashboard:  dashboardSvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()
	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))

	if cfg.Metrics.Enabled {
		core.RegisterMetrics(prometheus.DefaultRegisterer)
		httpMetrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)
		router.Use(httpMetrics.Handler)
	}

	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	limiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.Window(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Window,
			cfg.RateLimit.Burst,
		),
		RoleLimits: middleware.DefaultRoleLimits,
		FailOpen:   true,
	})

	verify := middleware.Authenticator(verifier)
	authenticator := func(next http.Handler) http.Handler {
		return verify(limiter.Handler(next))
	}
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		plan.NewHandler(planSvc).RegisterRoutes(r, authenticator, adminOnly)
		member.NewHandler(memberSvc).RegisterRoutes(r, authenticator, adminOnly)
		attendance.NewHandler(attendanceSvc).RegisterRoutes(r, authenticator, adminOnly)
		payment.NewHandler(paymentSvc).RegisterRoutes(r, authenticator, adminOnly)
		dashboard.NewHandler(dashboardSvc).RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
