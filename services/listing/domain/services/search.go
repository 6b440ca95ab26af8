package services

import (
	"fmt"
	"strings"

	listingdomain "github.com/ghuser/lostfound/services/listing/domain"
	"github.com/ghuser/lostfound/services/listing/domain/models"
)

// RecentLimit is the fixed size of the recent-listings feed shown on Home.
const RecentLimit = 6

// Filter is a conjunctive set of optional search predicates. A zero field
// imposes no constraint.
type Filter struct {
	Keywords string           // case-insensitive substring of "title description"
	Type     *models.ItemType // exact match
	Category *models.Category // exact match
	Location string           // case-insensitive substring of location
}

// RawFilter holds filter form values as typed by the user.
type RawFilter struct {
	Keywords string
	Type     string
	Category string
	Location string
}

// ParseFilter converts form values into a Filter. Keywords and location are
// matched exactly as typed and only the empty string is absent. Blank enum
// values are absent; values outside the closed sets are rejected with
// ErrInvalidFilter.
func ParseFilter(raw RawFilter) (Filter, error) {
	f := Filter{
		Keywords: raw.Keywords,
		Location: raw.Location,
	}
	if s := strings.TrimSpace(raw.Type); s != "" {
		t, err := models.ParseItemType(s)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %w", listingdomain.ErrInvalidFilter, err)
		}
		f.Type = &t
	}
	if s := strings.TrimSpace(raw.Category); s != "" {
		c, err := models.ParseCategory(s)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %w", listingdomain.ErrInvalidFilter, err)
		}
		f.Category = &c
	}
	return f, nil
}

// Matches reports whether l is active and satisfies every supplied predicate.
func (f Filter) Matches(l models.Listing) bool {
	if !l.IsActive() {
		return false
	}
	if f.Keywords != "" && !containsFold(l.Title+" "+l.Description, f.Keywords) {
		return false
	}
	if f.Type != nil && l.ItemType != *f.Type {
		return false
	}
	if f.Category != nil && l.Category != *f.Category {
		return false
	}
	if f.Location != "" && !containsFold(l.Location, f.Location) {
		return false
	}
	return true
}

// Search returns the listings matching f, preserving input order. The result
// is never nil; an empty slice means no matches.
func Search(listings []models.Listing, f Filter) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
