package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ListingCacheTTL bounds how long a warmed recent feed is served.
	ListingCacheTTL = 10 * time.Minute

	listingKeyPrefix = "listing"
	recentKey        = "listings:recent"
	recentGenKey     = "listings:recent:gen"
)

// ErrStaleFeed is returned by SetRecent when the feed was invalidated after
// the caller read its generation. The write is skipped.
var ErrStaleFeed = errors.New("recent feed invalidated since read")

// CachedListing is the denormalized read model stored in Redis, one hash per
// listing. Price is empty for listings that carry none.
type CachedListing struct {
	ID          int64
	Title       string
	Description string
	Category    string
	Location    string
	ContactInfo string
	ItemType    string
	Price       string
	DatePosted  string
	Status      string
}

// ListingCache caches the recent-listings feed.
// Key format: "listing:{id}" for each hash and "listings:recent" for the
// ordered list of ids. "listings:recent:gen" counts invalidations; writers
// read it before loading the store and SetRecent refuses a stale snapshot.
type ListingCache struct {
	client *RedisClient
}

// NewListingCache returns nil when r is nil so callers can treat a missing
// Redis as a permanently cold cache.
func NewListingCache(r *RedisClient) *ListingCache {
	if r == nil {
		return nil
	}
	return &ListingCache{client: r}
}

// GetRecent returns the cached feed in order. It returns redis.Nil when the
// feed is absent or any member hash has expired.
func (c *ListingCache) GetRecent(ctx context.Context) ([]CachedListing, error) {
	if c == nil {
		return nil, redis.Nil
	}
	rdb := c.client.Client()
	ids, err := rdb.LRange(ctx, recentKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get recent: %w", err)
	}
	if len(ids) == 0 {
		return nil, redis.Nil
	}

	pipe := rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, listingKeyPrefix+":"+id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("cache get recent: %w", err)
	}

	out := make([]CachedListing, 0, len(ids))
	for _, cmd := range cmds {
		vals := cmd.Val()
		if len(vals) == 0 {
			return nil, redis.Nil
		}
		l, err := decodeListing(vals)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Generation returns the current invalidation count. Read it before loading
// the feed from the store and pass it to SetRecent.
func (c *ListingCache) Generation(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}
	gen, err := c.client.Client().Get(ctx, recentGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache get generation: %w", err)
	}
	return gen, nil
}

// SetRecent replaces the cached feed with a snapshot taken at generation gen.
// If the feed was invalidated since, nothing is written and ErrStaleFeed is
// returned. An empty feed only clears the cache.
func (c *ListingCache) SetRecent(ctx context.Context, gen int64, listings []CachedListing) error {
	if c == nil {
		return nil
	}
	err := c.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, recentGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return ErrStaleFeed
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, recentKey)
			ids := make([]any, 0, len(listings))
			for _, l := range listings {
				key := c.key(l.ID)
				pipe.HSet(ctx, key, encodeListing(l)...)
				pipe.Expire(ctx, key, ListingCacheTTL)
				ids = append(ids, l.ID)
			}
			if len(ids) > 0 {
				pipe.RPush(ctx, recentKey, ids...)
				pipe.Expire(ctx, recentKey, ListingCacheTTL)
			}
			return nil
		})
		return err
	}, recentGenKey)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleFeed), errors.Is(err, redis.TxFailedErr):
		return ErrStaleFeed
	default:
		return fmt.Errorf("cache set recent: %w", err)
	}
}

// InvalidateRecent drops the feed and bumps the generation so in-flight
// snapshots can no longer be written. Member hashes expire on their own.
func (c *ListingCache) InvalidateRecent(ctx context.Context) error {
	if c == nil {
		return nil
	}
	pipe := c.client.Client().TxPipeline()
	pipe.Incr(ctx, recentGenKey)
	pipe.Del(ctx, recentKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache invalidate recent: %w", err)
	}
	return nil
}

// IsMiss reports whether err means the feed simply is not cached.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (c *ListingCache) key(id int64) string {
	return fmt.Sprintf("%s:%d", listingKeyPrefix, id)
}

func encodeListing(l CachedListing) []any {
	return []any{
		"id", strconv.FormatInt(l.ID, 10),
		"title", l.Title,
		"description", l.Description,
		"category", l.Category,
		"location", l.Location,
		"contact_info", l.ContactInfo,
		"item_type", l.ItemType,
		"price", l.Price,
		"date_posted", l.DatePosted,
		"status", l.Status,
	}
}

func decodeListing(vals map[string]string) (CachedListing, error) {
	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return CachedListing{}, fmt.Errorf("cache parse id: %w", err)
	}
	return CachedListing{
		ID:          id,
		Title:       vals["title"],
		Description: vals["description"],
		Category:    vals["category"],
		Location:    vals["location"],
		ContactInfo: vals["contact_info"],
		ItemType:    vals["item_type"],
		Price:       vals["price"],
		DatePosted:  vals["date_posted"],
		Status:      vals["status"],
	}, nil
}
