// Package views runs the directory's page state machine. A Navigator is
// rebuilt from the visitor's State on every request; entering a page runs that
// page's entry effects in order, synchronously, before Goto returns.
package views

import (
	"context"
	"fmt"

	listingdomain "github.com/ghuser/lostfound/services/listing/domain"
	"github.com/ghuser/lostfound/services/listing/domain/models"
	domainsvcs "github.com/ghuser/lostfound/services/listing/domain/services"
)

// PostedMessage confirms a successful submission.
const PostedMessage = "Your item has been posted successfully!"

// Directory is the slice of the listing service the navigator drives.
type Directory interface {
	Recent(ctx context.Context, n int) []models.Listing
	Search(ctx context.Context, f domainsvcs.Filter) []models.Listing
	Post(ctx context.Context, raw domainsvcs.RawListing) (models.Listing, error)
}

// Renderer receives every result set an entry effect or action produces.
type Renderer interface {
	Render(ctx context.Context, page Page, listings []models.Listing)
}

// State is everything about a visitor that survives between requests.
// The zero State is the Home page with empty forms.
type State struct {
	Page     Page
	PostType models.ItemType // "" until a type is chosen
	Filter   domainsvcs.RawFilter
}

// View is what the visitor sees after an action.
type View struct {
	Page      Page                 `json:"page"`
	Listings  []models.Listing     `json:"-"`
	NoResults bool                 `json:"no_results"`
	Filter    domainsvcs.RawFilter `json:"-"`
	PostForm  *PostForm            `json:"post_form,omitempty"`
	Posted    *models.Listing      `json:"-"`
	Message   string               `json:"message,omitempty"`
}

// GotoOptions carries the optional item type hint for the post page.
type GotoOptions struct {
	ItemType *models.ItemType
}

type effect func(ctx context.Context, n *Navigator, v *View)

// Navigator is the page state machine for one visitor.
type Navigator struct {
	dir    Directory
	render Renderer
	state  State
	entry  map[Page][]effect
}

// NewNavigator resumes a visitor at state. An empty Page is treated as Home.
func NewNavigator(dir Directory, render Renderer, state State) *Navigator {
	if state.Page == "" {
		state.Page = PageHome
	}
	return &Navigator{
		dir:    dir,
		render: render,
		state:  state,
		entry: map[Page][]effect{
			PageHome:     {showRecent},
			PageSearch:   {showAllActive},
			PagePostItem: {showPostForm},
		},
	}
}

// State returns the visitor state to persist.
func (n *Navigator) State() State { return n.state }

// Current rebuilds the view of the current page by re-running its entry effects.
func (n *Navigator) Current(ctx context.Context) View {
	return n.enter(ctx, n.state.Page)
}

// Goto moves to page and runs its entry effects. Re-entering the current page
// runs them again. A page outside the closed set leaves the state untouched.
func (n *Navigator) Goto(ctx context.Context, page Page, opts GotoOptions) View {
	if page == PagePostItem && opts.ItemType != nil {
		n.state.PostType = *opts.ItemType
	}
	return n.enter(ctx, page)
}

// SelectType changes the post form's item type without leaving the page.
func (n *Navigator) SelectType(ctx context.Context, t models.ItemType) View {
	n.state.PostType = t
	return n.enter(ctx, PagePostItem)
}

// Search records the filter form and shows the matching listings. The form is
// parsed before any state changes, so a bad filter leaves the visitor where
// they were.
func (n *Navigator) Search(ctx context.Context, raw domainsvcs.RawFilter) (View, error) {
	f, err := domainsvcs.ParseFilter(raw)
	if err != nil {
		return View{}, err
	}
	n.state.Page = PageSearch
	n.state.Filter = raw
	v := View{Page: PageSearch, Filter: raw}
	n.show(ctx, &v, n.dir.Search(ctx, f))
	return v, nil
}

// ClearFilters resets the filter form and shows every active listing.
func (n *Navigator) ClearFilters(ctx context.Context) View {
	n.state.Filter = domainsvcs.RawFilter{}
	return n.enter(ctx, PageSearch)
}

// Submit validates and posts a draft. On success the post form resets and the
// visitor lands on Home with a confirmation; on failure nothing changes and
// the view carries the prompt for the rejected rule.
func (n *Navigator) Submit(ctx context.Context, raw domainsvcs.RawListing) (View, error) {
	l, err := n.dir.Post(ctx, raw)
	if err != nil {
		if msg := listingdomain.UserMessage(err); msg != "" {
			return View{Page: n.state.Page, Message: msg}, err
		}
		return View{}, fmt.Errorf("submit listing: %w", err)
	}
	n.state.PostType = ""
	v := n.enter(ctx, PageHome)
	v.Posted = &l
	v.Message = PostedMessage
	return v, nil
}

func (n *Navigator) enter(ctx context.Context, page Page) View {
	fxs, ok := n.entry[page]
	if !ok {
		return View{Page: n.state.Page, Filter: n.state.Filter}
	}
	n.state.Page = page
	v := View{Page: page, Filter: n.state.Filter}
	for _, fx := range fxs {
		fx(ctx, n, &v)
	}
	return v
}

func (n *Navigator) show(ctx context.Context, v *View, listings []models.Listing) {
	v.Listings = listings
	v.NoResults = len(listings) == 0
	if n.render != nil {
		n.render.Render(ctx, v.Page, listings)
	}
}

func showRecent(ctx context.Context, n *Navigator, v *View) {
	n.show(ctx, v, n.dir.Recent(ctx, domainsvcs.RecentLimit))
}

func showAllActive(ctx context.Context, n *Navigator, v *View) {
	n.show(ctx, v, n.dir.Search(ctx, domainsvcs.Filter{}))
}

func showPostForm(_ context.Context, n *Navigator, v *View) {
	form := PostFormFor(n.state.PostType)
	v.PostForm = &form
}
