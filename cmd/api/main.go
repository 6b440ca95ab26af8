package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/lostfound/docs/swagger"
	"github.com/ghuser/lostfound/pkg/app"
	"github.com/ghuser/lostfound/pkg/cache"
	"github.com/ghuser/lostfound/pkg/config"
	"github.com/ghuser/lostfound/pkg/events"
	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/pkg/session"
	"github.com/ghuser/lostfound/pkg/telemetry"
	listingApi "github.com/ghuser/lostfound/services/listing/application/api"
	appsvcs "github.com/ghuser/lostfound/services/listing/application/services"
	"github.com/ghuser/lostfound/services/listing/application/subscribers"
)

// @title					Lost & Found API
// @version				1.0
// @description			Classified listings for lost, found and for-sale items.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	metrics, err := telemetry.NewListingMetrics()
	if err != nil {
		log.Error("failed to create listing metrics", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}

	var redisClient *cache.RedisClient
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
	} else {
		log.Info("redis disabled, recent feed served from the store")
	}

	eventBus := events.NewEventBus(log)
	defer eventBus.Close() //nolint:errcheck

	sessionStore := session.NewStore(redisClient, cfg)
	log.Info("session store initialized", "backend", sessionBackend(redisClient))

	a := &app.Application{
		Config:       cfg,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		SessionStore: sessionStore,
		Metrics:      metrics,
	}
	svcs := appsvcs.New(a)

	if err := subscribers.NewCacheWarmer(svcs.Listing, log).Register(ctx, eventBus); err != nil {
		log.Error("failed to register cache warmer", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	if err := svcs.Listing.WarmRecent(ctx); err != nil {
		log.Warn("initial recent feed warm failed", "error", err)
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	checks := httpx.HealthChecks{EventBus: eventBus}
	if redisClient != nil {
		checks.Redis = redisClient
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		listingApi.ListingRoutes(r, a, svcs)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func sessionBackend(rc *cache.RedisClient) string {
	if rc == nil {
		return "cookie"
	}
	return "redis"
}
