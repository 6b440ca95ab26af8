package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/lostfound/pkg/cache"
	"github.com/ghuser/lostfound/pkg/config"
	"github.com/ghuser/lostfound/pkg/events"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each bounded context's services.New during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "listing posted", "listing_id", id)
//	app.Logger.ErrorContext(ctx, "failed to publish", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient // nil when REDIS_URL is empty
	SessionStore sessions.Store     // Redis-backed, or signed cookies without Redis
	Metrics      *telemetry.ListingMetrics
}
