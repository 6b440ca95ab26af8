package services

import (
	"github.com/ghuser/lostfound/pkg/app"
	"github.com/ghuser/lostfound/pkg/cache"
	"github.com/ghuser/lostfound/services/listing/infrastructure/persistence/memory"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Listing *ListingService
}

// New wires the listing services with infrastructure from the Application
// container. The store lives as long as the returned Services, so create it
// once per process.
func New(a *app.Application) *Services {
	var opts []memory.Option
	if a.Config.SeedListings {
		opts = append(opts, memory.WithListings(memory.SeedListings()))
	}
	store := memory.NewListingStore(opts...)

	var bus Publisher
	if a.EventBus != nil {
		bus = a.EventBus
	}

	return &Services{
		Listing: NewListingService(store, Deps{
			Cache:   cache.NewListingCache(a.Redis),
			Bus:     bus,
			Metrics: a.Metrics,
			Logger:  a.Logger,
		}),
	}
}
