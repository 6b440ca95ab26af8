// Package subscribers holds the listing context's event handlers.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/lostfound/pkg/logger"
	domainevents "github.com/ghuser/lostfound/services/listing/domain/events"
)

// Subscriber is the event bus surface needed to register handlers.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// Warmer rebuilds the cached recent feed.
type Warmer interface {
	WarmRecent(ctx context.Context) error
}

// CacheWarmer refills the recent-listings cache whenever the feed changes,
// so the next home page load is a cache hit.
type CacheWarmer struct {
	warmer Warmer
	log    logger.Logger
}

// NewCacheWarmer returns a CacheWarmer using w.
func NewCacheWarmer(w Warmer, log logger.Logger) *CacheWarmer {
	return &CacheWarmer{warmer: w, log: log}
}

// Register subscribes to every topic that changes the recent feed and drains
// the error channels into the log until ctx ends.
func (c *CacheWarmer) Register(ctx context.Context, bus Subscriber) error {
	for _, topic := range []string{domainevents.TopicListingPosted, domainevents.TopicListingResolved} {
		errCh, err := bus.Subscribe(ctx, topic, c.Handle)
		if err != nil {
			return fmt.Errorf("subscribe cache warmer: %w", err)
		}
		go func(topic string) {
			for err := range errCh {
				c.log.ErrorContext(ctx, "cache warmer gave up", "topic", topic, "error", err)
			}
		}(topic)
	}
	return nil
}

// Handle decodes the listing id for the log line and warms the feed.
func (c *CacheWarmer) Handle(ctx context.Context, msg *message.Message) error {
	var ev struct {
		ListingID int64 `json:"listing_id"`
	}
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		// Malformed payloads will never succeed; drop them.
		c.log.WarnContext(ctx, "cache warmer: undecodable event", "message_id", msg.UUID, "error", err)
		return nil
	}
	if err := c.warmer.WarmRecent(ctx); err != nil {
		return err
	}
	c.log.DebugContext(ctx, "recent feed warmed", "listing_id", ev.ListingID)
	return nil
}
