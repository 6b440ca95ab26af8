package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lostfound/pkg/app"
	"github.com/ghuser/lostfound/services/listing/application/handlers"
	appsvcs "github.com/ghuser/lostfound/services/listing/application/services"
)

// ListingRoutes registers listing and view endpoints on the provided chi router.
// svcs must be the process-wide container so every route sees the same store.
func ListingRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	listings := handlers.NewListingHandler(svcs.Listing)
	view := handlers.NewViewHandler(svcs.Listing, a.SessionStore, a.Logger)

	r.Get("/categories", handlers.Categories)
	r.Get("/item-types", handlers.ItemTypes)
	r.Route("/listings", func(r chi.Router) {
		r.Get("/", listings.Search)
		r.Post("/", listings.Create)
		r.Get("/recent", listings.Recent)
		r.Get("/{id}", listings.Get)
		r.Post("/{id}/resolve", listings.Resolve)
	})
	r.Route("/view", func(r chi.Router) {
		r.Get("/", view.Show)
		r.Post("/navigate", view.Navigate)
		r.Post("/post-type", view.SelectType)
		r.Post("/search", view.Search)
		r.Post("/clear", view.Clear)
		r.Post("/submit", view.Submit)
	})
}
