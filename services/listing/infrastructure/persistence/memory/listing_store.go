// Package memory holds the in-process ListingRepository. The collection lives
// for the lifetime of the process; nothing is written to disk.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	listingdomain "github.com/ghuser/lostfound/services/listing/domain"
	"github.com/ghuser/lostfound/services/listing/domain/models"
	"github.com/ghuser/lostfound/services/listing/domain/repositories"
)

var _ repositories.ListingRepository = (*ListingStore)(nil)

// ListingStore implements repositories.ListingRepository over a slice kept
// newest first. All reads hand out clones.
type ListingStore struct {
	mu       sync.RWMutex
	listings []models.Listing
	nextID   int64
	now      func() time.Time
}

// Option configures a ListingStore.
type Option func(*ListingStore)

// WithClock overrides the clock used to stamp DatePosted.
func WithClock(now func() time.Time) Option {
	return func(s *ListingStore) { s.now = now }
}

// WithListings preloads the store. The listings must already be ordered
// newest first; the id counter continues after the highest id present.
func WithListings(listings []models.Listing) Option {
	return func(s *ListingStore) {
		s.listings = make([]models.Listing, 0, len(listings))
		for _, l := range listings {
			s.listings = append(s.listings, l.Clone())
			if l.ID >= s.nextID {
				s.nextID = l.ID + 1
			}
		}
	}
}

// NewListingStore returns an empty store whose first id is 1.
func NewListingStore(opts ...Option) *ListingStore {
	s := &ListingStore{nextID: 1, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert stamps the draft and prepends it.
func (s *ListingStore) Insert(_ context.Context, draft models.ValidatedListing) models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := models.Listing{
		ID:          s.nextID,
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Location:    draft.Location,
		ContactInfo: draft.ContactInfo,
		ItemType:    draft.ItemType,
		Price:       draft.Price,
		DatePosted:  models.DateOf(s.now().UTC()),
		Status:      models.StatusActive,
	}
	l = l.Clone()
	s.nextID++
	s.listings = slices.Insert(s.listings, 0, l)
	return l.Clone()
}

func (s *ListingStore) All(_ context.Context) []models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Listing, len(s.listings))
	for i, l := range s.listings {
		out[i] = l.Clone()
	}
	return out
}

// Recent returns up to n active listings from the front of the collection.
func (s *ListingStore) Recent(_ context.Context, n int) []models.Listing {
	if n <= 0 {
		return []models.Listing{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Listing, 0, min(n, len(s.listings)))
	for _, l := range s.listings {
		if len(out) == n {
			break
		}
		if l.IsActive() {
			out = append(out, l.Clone())
		}
	}
	return out
}

// Get returns ErrListingNotFound when no listing has the given id.
func (s *ListingStore) Get(_ context.Context, id int64) (models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Listing{}, fmt.Errorf("%w: id %d", listingdomain.ErrListingNotFound, id)
	}
	return s.listings[i].Clone(), nil
}

func (s *ListingStore) Resolve(_ context.Context, id int64) (models.Listing, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Listing{}, false, fmt.Errorf("%w: id %d", listingdomain.ErrListingNotFound, id)
	}
	changed := s.listings[i].Status != models.StatusResolved
	s.listings[i].Status = models.StatusResolved
	return s.listings[i].Clone(), changed, nil
}

// Len reports the number of stored listings, resolved ones included.
func (s *ListingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

func (s *ListingStore) indexOf(id int64) int {
	return slices.IndexFunc(s.listings, func(l models.Listing) bool { return l.ID == id })
}
