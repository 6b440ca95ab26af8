package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	pkgcache "github.com/ghuser/lostfound/pkg/cache"
	"github.com/ghuser/lostfound/pkg/events"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/pkg/telemetry"
	listingdomain "github.com/ghuser/lostfound/services/listing/domain"
	domainevents "github.com/ghuser/lostfound/services/listing/domain/events"
	"github.com/ghuser/lostfound/services/listing/domain/models"
	"github.com/ghuser/lostfound/services/listing/domain/repositories"
	domainsvcs "github.com/ghuser/lostfound/services/listing/domain/services"
)

const eventVersion = 1

// Publisher is the event bus surface the service needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// Deps are the optional collaborators of a ListingService. Every field may
// be left zero.
type Deps struct {
	Cache   *pkgcache.ListingCache
	Bus     Publisher
	Metrics *telemetry.ListingMetrics
	Logger  logger.Logger
	Now     func() time.Time
}

// ListingService orchestrates posting, browsing and resolving listings.
// The recent feed is served from Redis when available; events are published
// after the store changes and their failure never fails the request.
type ListingService struct {
	repo    repositories.ListingRepository
	cache   *pkgcache.ListingCache
	bus     Publisher
	metrics *telemetry.ListingMetrics
	log     logger.Logger
	now     func() time.Time
}

// NewListingService returns a ListingService over repo.
func NewListingService(repo repositories.ListingRepository, deps Deps) *ListingService {
	s := &ListingService{
		repo:    repo,
		cache:   deps.Cache,
		bus:     deps.Bus,
		metrics: deps.Metrics,
		log:     deps.Logger,
		now:     deps.Now,
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Post validates a raw draft and inserts it. Validation errors are returned
// unchanged so callers can match the domain sentinels.
func (s *ListingService) Post(ctx context.Context, raw domainsvcs.RawListing) (models.Listing, error) {
	draft, err := domainsvcs.ValidateListing(raw)
	if err != nil {
		s.metrics.RecordRejected(ctx, listingdomain.RejectionReason(err))
		s.log.InfoContext(ctx, "listing rejected", "reason", listingdomain.RejectionReason(err), "error", err)
		return models.Listing{}, err
	}

	l := s.repo.Insert(ctx, draft)
	s.metrics.RecordPosted(ctx, l.ItemType.String())
	s.log.InfoContext(ctx, "listing posted", "listing_id", l.ID, "item_type", l.ItemType)

	s.invalidateRecent(ctx)
	s.publish(ctx, domainevents.TopicListingPosted, domainevents.ListingPostedEvent{
		EventID:    uuid.New(),
		Version:    eventVersion,
		ListingID:  l.ID,
		Title:      l.Title,
		ItemType:   l.ItemType.String(),
		Category:   l.Category.String(),
		OccurredAt: s.now().UTC(),
	})
	return l, nil
}

// Search runs f over every listing, newest first.
func (s *ListingService) Search(ctx context.Context, f domainsvcs.Filter) []models.Listing {
	s.metrics.RecordSearch(ctx)
	return domainsvcs.Search(s.repo.All(ctx), f)
}

// Recent returns up to n active listings, capped at domainsvcs.RecentLimit.
// The feed is read from the cache when warm; a miss loads the store and
// warms the cache unless a write invalidated it meanwhile.
func (s *ListingService) Recent(ctx context.Context, n int) []models.Listing {
	if n <= 0 {
		return []models.Listing{}
	}
	n = min(n, domainsvcs.RecentLimit)

	if s.cache != nil {
		cached, err := s.cache.GetRecent(ctx)
		switch {
		case err == nil:
			feed, convErr := fromCachedFeed(cached)
			if convErr == nil {
				return feed[:min(n, len(feed))]
			}
			s.log.WarnContext(ctx, "discarding unreadable recent feed", "error", convErr)
		case !pkgcache.IsMiss(err):
			s.log.WarnContext(ctx, "recent feed cache read failed", "error", err)
		}
	}

	feed, err := s.warmRecent(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "recent feed cache warm failed", "error", err)
	}
	return feed[:min(n, len(feed))]
}

// Get returns ErrListingNotFound for unknown ids.
func (s *ListingService) Get(ctx context.Context, id int64) (models.Listing, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Listing{}, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

// Resolve marks a listing resolved. Resolving an already resolved listing
// succeeds without publishing a second event.
func (s *ListingService) Resolve(ctx context.Context, id int64) (models.Listing, error) {
	l, changed, err := s.repo.Resolve(ctx, id)
	if err != nil {
		return models.Listing{}, fmt.Errorf("resolve listing: %w", err)
	}
	if !changed {
		return l, nil
	}
	s.log.InfoContext(ctx, "listing resolved", "listing_id", l.ID)
	s.invalidateRecent(ctx)
	s.publish(ctx, domainevents.TopicListingResolved, domainevents.ListingResolvedEvent{
		EventID:    uuid.New(),
		Version:    eventVersion,
		ListingID:  l.ID,
		OccurredAt: s.now().UTC(),
	})
	return l, nil
}

// WarmRecent rebuilds the cached recent feed from the store. It is a no-op
// without a cache, and skips the write when a newer invalidation raced it;
// that invalidation triggers its own warm.
func (s *ListingService) WarmRecent(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	_, err := s.warmRecent(ctx)
	return err
}

// warmRecent loads the feed and caches it. The generation is read before the
// store so a snapshot older than any invalidation is never written.
func (s *ListingService) warmRecent(ctx context.Context) ([]models.Listing, error) {
	if s.cache == nil {
		return s.repo.Recent(ctx, domainsvcs.RecentLimit), nil
	}
	gen, err := s.cache.Generation(ctx)
	feed := s.repo.Recent(ctx, domainsvcs.RecentLimit)
	if err != nil {
		return feed, fmt.Errorf("warm recent feed: %w", err)
	}
	err = s.cache.SetRecent(ctx, gen, toCachedFeed(feed))
	switch {
	case errors.Is(err, pkgcache.ErrStaleFeed):
		s.log.DebugContext(ctx, "skipped stale recent feed write", "generation", gen)
		return feed, nil
	case err != nil:
		return feed, fmt.Errorf("warm recent feed: %w", err)
	}
	return feed, nil
}

func (s *ListingService) invalidateRecent(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRecent(ctx); err != nil {
		s.log.WarnContext(ctx, "recent feed invalidation failed", "error", err)
	}
}

func (s *ListingService) publish(ctx context.Context, topic string, payload any) {
	if s.bus == nil {
		return
	}
	msg, err := events.NewJSONMessage(payload)
	if err == nil {
		err = s.bus.Publish(ctx, topic, msg)
	}
	if err != nil {
		s.log.ErrorContext(ctx, "failed to publish event", "topic", topic, "error", err)
	}
}
