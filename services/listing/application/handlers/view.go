package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/lostfound/pkg/errhttp"
	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/pkg/session"
	pkgvalidator "github.com/ghuser/lostfound/pkg/validator"
	appsvcs "github.com/ghuser/lostfound/services/listing/application/services"
	"github.com/ghuser/lostfound/services/listing/application/views"
	listingdomain "github.com/ghuser/lostfound/services/listing/domain"
	"github.com/ghuser/lostfound/services/listing/domain/models"
	domainsvcs "github.com/ghuser/lostfound/services/listing/domain/services"
)

// Session keys holding the visitor's view state.
const (
	keyPage     = "page"
	keyPostType = "post_type"
	keyKeywords = "f_keywords"
	keyType     = "f_type"
	keyCategory = "f_category"
	keyLocation = "f_location"
)

// cardRenderer collects the last result set as JSON cards.
type cardRenderer struct {
	cards []ListingResponse
}

func (c *cardRenderer) Render(_ context.Context, _ views.Page, listings []models.Listing) {
	c.cards = toResponses(listings)
}

// ViewHandler drives the page state machine for the visitor identified by
// the session cookie.
type ViewHandler struct {
	svc   *appsvcs.ListingService
	store sessions.Store
	log   logger.Logger
}

// NewViewHandler returns a ViewHandler persisting visitor state in store.
func NewViewHandler(svc *appsvcs.ListingService, store sessions.Store, log logger.Logger) *ViewHandler {
	return &ViewHandler{svc: svc, store: store, log: log}
}

// visit is one request's worth of navigator plus the session it came from.
type visit struct {
	nav     *views.Navigator
	cards   *cardRenderer
	session *sessions.Session
}

func (h *ViewHandler) begin(r *http.Request) *visit {
	s, err := h.store.Get(r, session.Name)
	if err != nil {
		// Undecodable cookies yield a fresh session alongside the error.
		h.log.WarnContext(r.Context(), "discarding visitor session", "error", err)
	}
	state := views.State{
		Page:     views.Page(session.String(s, keyPage)),
		PostType: models.ItemType(session.String(s, keyPostType)),
		Filter: domainsvcs.RawFilter{
			Keywords: session.String(s, keyKeywords),
			Type:     session.String(s, keyType),
			Category: session.String(s, keyCategory),
			Location: session.String(s, keyLocation),
		},
	}
	if _, err := views.ParsePage(string(state.Page)); err != nil {
		state.Page = views.PageHome
	}
	if _, err := models.ParseItemType(string(state.PostType)); err != nil {
		state.PostType = ""
	}
	cards := &cardRenderer{}
	return &visit{
		nav:     views.NewNavigator(h.svc, cards, state),
		cards:   cards,
		session: s,
	}
}

// finish stores the navigator state and writes the view.
func (h *ViewHandler) finish(w http.ResponseWriter, r *http.Request, v *visit, view views.View, status int) {
	st := v.nav.State()
	session.SetString(v.session, keyPage, st.Page.String())
	session.SetString(v.session, keyPostType, st.PostType.String())
	session.SetString(v.session, keyKeywords, st.Filter.Keywords)
	session.SetString(v.session, keyType, st.Filter.Type)
	session.SetString(v.session, keyCategory, st.Filter.Category)
	session.SetString(v.session, keyLocation, st.Filter.Location)
	if err := v.session.Save(r, w); err != nil {
		h.log.ErrorContext(r.Context(), "failed to save visitor session", "error", err)
	}

	resp := ViewResponse{
		Page:      view.Page.String(),
		Listings:  v.cards.cards,
		NoResults: view.NoResults,
		Filter:    filterForm(view.Filter),
		PostForm:  view.PostForm,
		Message:   view.Message,
	}
	if resp.Listings == nil {
		resp.Listings = []ListingResponse{}
	}
	if view.Posted != nil {
		posted := toResponse(*view.Posted)
		resp.Posted = &posted
	}
	httpx.JSON(w, status, resp)
}

func parseItemType(s string) (models.ItemType, error) {
	t, err := models.ParseItemType(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", listingdomain.ErrInvalidItemType, err)
	}
	return t, nil
}

// Show re-enters the visitor's current page.
//
//	@Summary		Current view
//	@Description	Re-runs the current page's entry effects. New visitors start on home.
//	@Tags			view
//	@Produce		json
//	@Success		200	{object}	ViewResponse
//	@Router			/view [get]
func (h *ViewHandler) Show(w http.ResponseWriter, r *http.Request) {
	v := h.begin(r)
	h.finish(w, r, v, v.nav.Current(r.Context()), http.StatusOK)
}

// Navigate moves the visitor to another page.
//
//	@Summary		Navigate
//	@Description	page is home, search or postItem. item_type pre-selects the post form type.
//	@Tags			view
//	@Accept			json
//	@Produce		json
//	@Param			request	body		NavigateRequest	true	"Target page"
//	@Success		200		{object}	ViewResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/view/navigate [post]
func (h *ViewHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[NavigateRequest](w, r)
	if !ok {
		return
	}
	page, err := views.ParsePage(req.Page)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	var opts views.GotoOptions
	if req.ItemType != "" {
		t, err := parseItemType(req.ItemType)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		opts.ItemType = &t
	}
	v := h.begin(r)
	h.finish(w, r, v, v.nav.Goto(r.Context(), page, opts), http.StatusOK)
}

// SelectType changes the post form's item type.
//
//	@Summary		Select post type
//	@Description	An empty item_type clears the selection.
//	@Tags			view
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SelectTypeRequest	true	"Item type"
//	@Success		200		{object}	ViewResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/view/post-type [post]
func (h *ViewHandler) SelectType(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SelectTypeRequest](w, r)
	if !ok {
		return
	}
	var t models.ItemType
	if req.ItemType != "" {
		parsed, err := parseItemType(req.ItemType)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		t = parsed
	}
	v := h.begin(r)
	h.finish(w, r, v, v.nav.SelectType(r.Context(), t), http.StatusOK)
}

// Search records the filter form and shows matching listings.
//
//	@Summary		Search from the view
//	@Tags			view
//	@Accept			json
//	@Produce		json
//	@Param			request	body		FilterForm	true	"Filter form"
//	@Success		200		{object}	ViewResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Router			/view/search [post]
func (h *ViewHandler) Search(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[FilterForm](w, r)
	if !ok {
		return
	}
	v := h.begin(r)
	view, err := v.nav.Search(r.Context(), req.raw())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.finish(w, r, v, view, http.StatusOK)
}

// Clear resets the filter form and shows every active listing.
//
//	@Summary		Clear filters
//	@Tags			view
//	@Produce		json
//	@Success		200	{object}	ViewResponse
//	@Router			/view/clear [post]
func (h *ViewHandler) Clear(w http.ResponseWriter, r *http.Request) {
	v := h.begin(r)
	h.finish(w, r, v, v.nav.ClearFilters(r.Context()), http.StatusOK)
}

// Submit posts the post form. On success the visitor lands on home.
//
//	@Summary		Submit post form
//	@Tags			view
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateListingRequest	true	"Listing draft"
//	@Success		201		{object}	ViewResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/view/submit [post]
func (h *ViewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateListingRequest](w, r)
	if !ok {
		return
	}
	v := h.begin(r)
	view, err := v.nav.Submit(r.Context(), req.raw())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.finish(w, r, v, view, http.StatusCreated)
}
