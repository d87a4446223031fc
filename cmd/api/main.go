package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/nexvault/storefront-backend/api/controllers"
	"github.com/nexvault/storefront-backend/api/routes"
	"github.com/nexvault/storefront-backend/internal/analytics"
	"github.com/nexvault/storefront-backend/internal/auth"
	"github.com/nexvault/storefront-backend/internal/catalog"
	"github.com/nexvault/storefront-backend/internal/embed"
	"github.com/nexvault/storefront-backend/internal/gate"
	"github.com/nexvault/storefront-backend/internal/metadata"
	"github.com/nexvault/storefront-backend/internal/metadata/freshness"
	"github.com/nexvault/storefront-backend/internal/reports"
	"github.com/nexvault/storefront-backend/internal/users"
	"github.com/nexvault/storefront-backend/pkg/auth/session"
	"github.com/nexvault/storefront-backend/pkg/config"
	"github.com/nexvault/storefront-backend/pkg/db"
	"github.com/nexvault/storefront-backend/pkg/logger"
	"github.com/nexvault/storefront-backend/pkg/metrics"
	"github.com/nexvault/storefront-backend/pkg/migrate"
	"github.com/nexvault/storefront-backend/pkg/redis"
)

const sessionEventBuffer = 64

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

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	registry := prometheus.DefaultRegisterer
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metadataMetrics := metrics.NewMetadataMetrics(registry)
	gateMetrics := metrics.NewGateMetrics(registry)

	store, err := catalog.LoadEmbedded()
	if err != nil {
		return err
	}
	catalogService, err := catalog.NewService(store)
	if err != nil {
		return err
	}

	secrets, err := gate.ParseSecrets(cfg.Gate.Secrets)
	if err != nil {
		return err
	}
	gateService, err := gate.NewService(gate.ServiceParams{
		Catalog: catalogService,
		Secrets: secrets,
		Metrics: gateMetrics,
		Logger:  logg,
	})
	if err != nil {
		return err
	}

	metadataClient, err := metadata.NewClientFromConfig(cfg.Metadata, logg, metadataMetrics)
	if err != nil {
		return err
	}
	metadataService, err := metadata.NewService(metadataClient, freshness.NewTracker(), metadataMetrics)
	if err != nil {
		return err
	}

	userRepo := users.NewRepository(dbClient.DB())
	events := auth.NewBroadcaster(sessionEventBuffer)
	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		Events:         events,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return err
	}
	go logSessionEvents(ctx, logg, authService.Subscribe(ctx))

	reportRepo := reports.NewRepository(dbClient.DB())
	reportService, err := reports.NewService(reportRepo, catalogService)
	if err != nil {
		return err
	}

	analyticsService, err := analytics.NewService(analytics.ServiceParams{
		Users:   userRepo,
		Reports: reportRepo,
		Catalog: catalogService,
		Cache:   redisClient,
		TTL:     cfg.Analytics.SnapshotTTL,
		Logger:  logg,
	})
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Sessions: sessionManager,
			Limiter:  redisClient,
			Ready: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
			},
			HTTPMetrics:    httpMetrics,
			MetricsHandler: promhttp.Handler(),
			Auth:           authService,
			Catalog:        catalogService,
			Gate:           gateService,
			Metadata:       metadataService,
			Reports:        reportService,
			Analytics:      analyticsService,
			Embed:          embed.NewBuilder(cfg.Embed),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func logSessionEvents(ctx context.Context, logg *logger.Logger, events <-chan auth.SessionEvent) {
	for event := range events {
		eventCtx := logg.WithFields(ctx, map[string]any{
			"event":   "auth.session",
			"type":    string(event.Type),
			"user_id": event.UserID.String(),
		})
		logg.Info(eventCtx, "session changed")
	}
}
