package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lostfound/pkg/errhttp"
	"github.com/ghuser/lostfound/pkg/httpx"
	pkgvalidator "github.com/ghuser/lostfound/pkg/validator"
	appsvcs "github.com/ghuser/lostfound/services/listing/application/services"
	"github.com/ghuser/lostfound/services/listing/application/views"
	"github.com/ghuser/lostfound/services/listing/domain/models"
	domainsvcs "github.com/ghuser/lostfound/services/listing/domain/services"
)

// ListingHandler serves the stateless listing endpoints.
type ListingHandler struct {
	svc *appsvcs.ListingService
}

// NewListingHandler returns a ListingHandler backed by the given service.
func NewListingHandler(svc *appsvcs.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

// Search lists active listings matching every supplied filter.
//
//	@Summary		Search listings
//	@Description	Case-insensitive keyword and location matching, exact type and category matching. Only active listings are returned, newest first.
//	@Tags			listings
//	@Produce		json
//	@Param			keywords	query		string	false	"Substring of title or description"
//	@Param			type		query		string	false	"lost, found or sell"
//	@Param			category	query		string	false	"One of GET /categories"
//	@Param			location	query		string	false	"Substring of location"
//	@Success		200			{object}	ListingsResponse
//	@Failure		400			{object}	errhttp.ErrorResponse
//	@Router			/listings [get]
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := domainsvcs.ParseFilter(domainsvcs.RawFilter{
		Keywords: q.Get("keywords"),
		Type:     q.Get("type"),
		Category: q.Get("category"),
		Location: q.Get("location"),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newListingsResponse(h.svc.Search(r.Context(), f)))
}

// Recent lists the newest active listings.
//
//	@Summary		Recent listings
//	@Tags			listings
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum listings; capped at 6"
//	@Success		200		{object}	ListingsResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Router			/listings/recent [get]
func (h *ListingHandler) Recent(w http.ResponseWriter, r *http.Request) {
	n, err := parseLimit(r.URL.Query().Get("limit"), domainsvcs.RecentLimit)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, newListingsResponse(h.svc.Recent(r.Context(), n)))
}

// Get returns one listing, resolved or not.
//
//	@Summary		Get listing
//	@Tags			listings
//	@Produce		json
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	ListingResponse
//	@Failure		400	{object}	errhttp.ErrorResponse
//	@Failure		404	{object}	errhttp.ErrorResponse
//	@Router			/listings/{id} [get]
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}
	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(l))
}

// Create validates and posts a new listing.
//
//	@Summary		Post listing
//	@Description	Rules apply in order and the first failure wins: required fields, known category and type, positive price for sale items, email-shaped contact.
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateListingRequest	true	"Listing draft"
//	@Success		201		{object}	ListingResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/listings [post]
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateListingRequest](w, r)
	if !ok {
		return
	}
	l, err := h.svc.Post(r.Context(), req.raw())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(l))
}

// Resolve marks a listing resolved so it no longer appears in browse or search.
//
//	@Summary		Resolve listing
//	@Description	Idempotent: resolving an already resolved listing returns it unchanged.
//	@Tags			listings
//	@Produce		json
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	ListingResponse
//	@Failure		400	{object}	errhttp.ErrorResponse
//	@Failure		404	{object}	errhttp.ErrorResponse
//	@Router			/listings/{id}/resolve [post]
func (h *ListingHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}
	l, err := h.svc.Resolve(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(l))
}

// Categories lists the fixed category set.
//
//	@Summary		List categories
//	@Tags			listings
//	@Produce		json
//	@Success		200	{object}	CategoriesResponse
//	@Router			/categories [get]
func Categories(w http.ResponseWriter, _ *http.Request) {
	cats := models.Categories()
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.String()
	}
	httpx.JSON(w, http.StatusOK, CategoriesResponse{Categories: out})
}

// ItemTypes lists the item types in display order with their post form layout.
//
//	@Summary		List item types
//	@Tags			listings
//	@Produce		json
//	@Success		200	{object}	ItemTypesResponse
//	@Router			/item-types [get]
func ItemTypes(w http.ResponseWriter, _ *http.Request) {
	types := models.ItemTypes()
	out := make([]views.PostForm, len(types))
	for i, t := range types {
		out[i] = views.PostFormFor(t)
	}
	httpx.JSON(w, http.StatusOK, ItemTypesResponse{ItemTypes: out})
}

func listingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid listing id %q", raw))
		return 0, false
	}
	return id, true
}
