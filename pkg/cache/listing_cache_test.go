package cache

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestNilListingCache_IsColdAndInert(t *testing.T) {
	c := NewListingCache(nil)
	if c != nil {
		t.Fatal("expected nil cache for nil client")
	}
	ctx := context.Background()

	if _, err := c.GetRecent(ctx); !IsMiss(err) {
		t.Errorf("expected miss from nil cache, got %v", err)
	}
	if gen, err := c.Generation(ctx); gen != 0 || err != nil {
		t.Errorf("Generation on nil cache = %d, %v", gen, err)
	}
	if err := c.SetRecent(ctx, 0, []CachedListing{{ID: 1}}); err != nil {
		t.Errorf("SetRecent on nil cache: %v", err)
	}
	if err := c.InvalidateRecent(ctx); err != nil {
		t.Errorf("InvalidateRecent on nil cache: %v", err)
	}
}

func TestEncodeDecodeListing(t *testing.T) {
	in := CachedListing{
		ID: 3, Title: "Laptop for Sale", Description: "Dell laptop",
		Category: "Electronics", Location: "Downtown", ContactInfo: "seller@email.com",
		ItemType: "sell", Price: "450", DatePosted: "2024-09-08", Status: "active",
	}
	fields := encodeListing(in)
	vals := make(map[string]string, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		vals[fields[i].(string)] = fields[i+1].(string)
	}

	out, err := decodeListing(vals)
	if err != nil {
		t.Fatalf("decodeListing: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}

	if _, err := decodeListing(map[string]string{"id": "x"}); err == nil {
		t.Error("expected error for malformed id")
	}
}

func TestListingCache_Key(t *testing.T) {
	c := &ListingCache{}
	if got := c.key(42); got != "listing:42" {
		t.Errorf("key(42) = %q", got)
	}
}

// Integration test: skipped unless REDIS_URL is set.
func TestListingCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	c := NewListingCache(rc)
	t.Cleanup(func() { _ = c.InvalidateRecent(ctx) })

	if err := c.InvalidateRecent(ctx); err != nil {
		t.Fatalf("InvalidateRecent: %v", err)
	}
	if _, err := c.GetRecent(ctx); !IsMiss(err) {
		t.Fatalf("expected miss after invalidate, got %v", err)
	}

	feed := []CachedListing{
		{ID: 2, Title: "Found Car Keys", ItemType: "found", Status: "active"},
		{ID: 1, Title: "Lost iPhone 13", ItemType: "lost", Status: "active"},
	}
	gen, err := c.Generation(ctx)
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if err := c.SetRecent(ctx, gen, feed); err != nil {
		t.Fatalf("SetRecent: %v", err)
	}
	got, err := c.GetRecent(ctx)
	if err != nil {
		t.Fatalf("GetRecent: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected feed order: %+v", got)
	}
}

func TestListingCacheIntegration_StaleSnapshotIsNotWritten(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	c := NewListingCache(rc)
	t.Cleanup(func() { _ = c.InvalidateRecent(ctx) })

	// A reader snapshots the feed, then a resolve invalidates it before the
	// reader's write lands.
	gen, err := c.Generation(ctx)
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	snapshot := []CachedListing{{ID: 1, Title: "Lost iPhone 13", Status: "active"}}
	if err := c.InvalidateRecent(ctx); err != nil {
		t.Fatalf("InvalidateRecent: %v", err)
	}

	if err := c.SetRecent(ctx, gen, snapshot); !errors.Is(err, ErrStaleFeed) {
		t.Fatalf("expected ErrStaleFeed, got %v", err)
	}
	if _, err := c.GetRecent(ctx); !IsMiss(err) {
		t.Fatalf("stale snapshot must not be cached, got %v", err)
	}

	fresh, err := c.Generation(ctx)
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if fresh != gen+1 {
		t.Errorf("generation = %d, want %d", fresh, gen+1)
	}
	if err := c.SetRecent(ctx, fresh, nil); err != nil {
		t.Errorf("SetRecent at current generation: %v", err)
	}
}
