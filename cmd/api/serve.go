// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/prombirzha/marketplace/internal/admin"
	"github.com/prombirzha/marketplace/internal/auth"
	"github.com/prombirzha/marketplace/internal/bid"
	"github.com/prombirzha/marketplace/internal/billing"
	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/config"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/events"
	"github.com/prombirzha/marketplace/internal/health"
	"github.com/prombirzha/marketplace/internal/metrics"
	"github.com/prombirzha/marketplace/internal/middleware"
	"github.com/prombirzha/marketplace/internal/order"
	"github.com/prombirzha/marketplace/internal/review"
	"github.com/prombirzha/marketplace/internal/server"
	"github.com/prombirzha/marketplace/internal/stats"
	"github.com/prombirzha/marketplace/internal/user"
	"github.com/prombirzha/marketplace/migrations"
)

const (
	drainDelay = 5 * time.Second
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(
		&migrateOnStart, "migrate", false, "apply pending migrations before serving",
	)
}

//nolint:funlen // bootstrap code is inherently verbose
func serve(ctx context.Context) error {
	cfg, logger, err := boot()
	if err != nil {
		return err
	}

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
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
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if migrateOnStart {
		if err := db.Migrate(ctx, migrations.FS, migrations.Dir, "up"); err != nil {
			_ = db.Close() //nolint:errcheck // already failing
			return err
		}
		logger.Info("migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT verifier initialized",
		"issuer", cfg.JWT.Issuer,
		"can_sign", jwtManager.CanSign(),
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	publisher, kafkaPing := newPublisher(cfg.Kafka, logger, m)

	paging := core.Paging{
		Default: cfg.Marketplace.DefaultPageSize,
		Max:     cfg.Marketplace.MaxPageSize,
	}

	userSvc := user.NewService(user.NewRepository(db.DB))
	userHandler := user.NewHandler(userSvc, paging)

	billingSvc := billing.NewService(billing.NewRepository(db.DB))
	billingHandler := billing.NewHandler(billingSvc)

	companySvc := company.NewService(
		company.NewRepository(db.DB), billingSvc, publisher, m,
	)
	companyHandler := company.NewHandler(companySvc, paging, cfg.Marketplace.FeaturedLimit)

	orderSvc := order.NewService(order.NewRepository(db.DB), publisher, m)
	orderHandler := order.NewHandler(orderSvc, paging, cfg.Marketplace.FeaturedLimit)

	bidSvc := bid.NewService(bid.NewRepository(db.DB), orderSvc, companySvc, publisher, m)
	bidHandler := bid.NewHandler(bidSvc)

	reviewSvc := review.NewService(review.NewRepository(db.DB), companySvc, orderSvc, publisher, m)
	reviewHandler := review.NewHandler(reviewSvc)

	statsHandler := stats.NewHandler(stats.NewRepository(db.DB))

	authHandler := auth.NewHandler(auth.NewService(userSvc, companySvc))

	deps := []health.Dependency{
		{Name: "database", Checker: db},
		{Name: "redis", Checker: redis},
	}
	if kafkaPing != nil {
		deps = append(deps, health.Dependency{
			Name: "kafka", Checker: kafkaPing, Optional: true,
		})
	}
	healthHandler := health.NewHandler(deps...)

	adminCfg := admin.HandlerConfig{
		DBStats:      db.Stats,
		RedisStats:   redis.PoolStats,
		DBPing:       db.Ping,
		RedisPing:    redis.Ping,
		Verification: companyHandler.SetVerification,
	}
	if kafkaPing != nil {
		adminCfg.KafkaPing = kafkaPing.Ping
	}
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if m != nil {
		router.Use(middleware.Metrics(m))
	}
	router.Use(
		middleware.NewRateLimiter(redis.Limiter(), middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	if m != nil {
		router.Handle(cfg.Metrics.Path, m.Handler())
	}

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin(userSvc.Role)
	limiter := middleware.MutationLimiter(
		redis.Limiter(),
		middleware.PerWindow(
			cfg.RateLimit.MutationRequests,
			cfg.RateLimit.MutationBurst,
			cfg.RateLimit.Window,
		),
	)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		companyHandler.RegisterRoutes(r, authenticator, limiter)
		orderHandler.RegisterRoutes(r, authenticator, limiter)
		bidHandler.RegisterRoutes(r, authenticator, limiter)
		reviewHandler.RegisterRoutes(r, authenticator, limiter)
		billingHandler.RegisterRoutes(r)
		statsHandler.RegisterRoutes(r)

		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	var serveErr error
	select {
	case serveErr = <-errChan:
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if serveErr == nil {
		if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}

	if err := publisher.Close(shutdownCtx); err != nil {
		logger.Error("event publisher close error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return serveErr
}

// newPublisher returns the Kafka publisher when the event stream is
// enabled. The second result doubles as the readiness checker and is nil
// otherwise.
func newPublisher(
	cfg config.KafkaConfig,
	logger *slog.Logger,
	m *metrics.Metrics,
) (events.Publisher, *events.KafkaPublisher) {
	if !cfg.Enabled {
		logger.Info("event stream disabled")
		return events.NopPublisher{}, nil
	}

	p := events.NewKafkaPublisher(cfg, logger, m)
	logger.Info("event stream enabled",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
	)
	return p, p
}
