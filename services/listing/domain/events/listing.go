package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicListingPosted is published after a listing enters the store.
	TopicListingPosted = "listing.posted"
	// TopicListingResolved is published when a listing is marked resolved.
	TopicListingResolved = "listing.resolved"
)

// ListingPostedEvent is published after a new Listing is inserted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicListingPosted).
type ListingPostedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ListingID  int64     `json:"listing_id"`
	Title      string    `json:"title"`
	ItemType   string    `json:"item_type"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ListingResolvedEvent is published the first time a listing is resolved.
type ListingResolvedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ListingID  int64     `json:"listing_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
