package repositories

import (
	"context"

	"github.com/ghuser/lostfound/services/listing/domain/models"
)

// ListingRepository is the storage interface for the Listing collection.
// The domain layer owns this interface; infrastructure implements it.
// Returned listings are copies; mutating them never affects the store.
type ListingRepository interface {
	// Insert assigns id, date and status to a validated draft and places it
	// at the front of the collection. It cannot fail.
	Insert(ctx context.Context, draft models.ValidatedListing) models.Listing

	// All returns every listing, newest first.
	All(ctx context.Context) []models.Listing

	// Recent returns the first n active listings. n <= 0 yields an empty slice.
	Recent(ctx context.Context, n int) []models.Listing

	Get(ctx context.Context, id int64) (models.Listing, error)

	// Resolve marks a listing resolved. Resolving twice is not an error;
	// the bool reports whether this call changed the status.
	Resolve(ctx context.Context, id int64) (models.Listing, bool, error)
}
