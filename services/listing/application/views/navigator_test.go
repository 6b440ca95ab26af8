package views

import (
	"context"
	"errors"
	"testing"
	"time"

	listingdomain "github.com/ghuser/lostfound/services/listing/domain"
	"github.com/ghuser/lostfound/services/listing/domain/models"
	domainsvcs "github.com/ghuser/lostfound/services/listing/domain/services"
	"github.com/ghuser/lostfound/services/listing/infrastructure/persistence/memory"
)

// storeDirectory drives the navigator straight off the in-memory store.
type storeDirectory struct {
	store *memory.ListingStore
	posts int
}

func (d *storeDirectory) Recent(ctx context.Context, n int) []models.Listing {
	return d.store.Recent(ctx, n)
}

func (d *storeDirectory) Search(ctx context.Context, f domainsvcs.Filter) []models.Listing {
	return domainsvcs.Search(d.store.All(ctx), f)
}

func (d *storeDirectory) Post(ctx context.Context, raw domainsvcs.RawListing) (models.Listing, error) {
	v, err := domainsvcs.ValidateListing(raw)
	if err != nil {
		return models.Listing{}, err
	}
	d.posts++
	return d.store.Insert(ctx, v), nil
}

type rendered struct {
	page Page
	ids  []int64
}

type recordingRenderer struct{ calls []rendered }

func (r *recordingRenderer) Render(_ context.Context, page Page, listings []models.Listing) {
	ids := make([]int64, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	r.calls = append(r.calls, rendered{page: page, ids: ids})
}

func newNavigator(state State) (*Navigator, *storeDirectory, *recordingRenderer) {
	store := memory.NewListingStore(
		memory.WithListings(memory.SeedListings()),
		memory.WithClock(func() time.Time { return time.Date(2024, 9, 11, 9, 0, 0, 0, time.UTC) }),
	)
	dir := &storeDirectory{store: store}
	rec := &recordingRenderer{}
	return NewNavigator(dir, rec, state), dir, rec
}

func itemType(t models.ItemType) *models.ItemType { return &t }

func TestParsePage(t *testing.T) {
	tests := []struct {
		in      string
		want    Page
		wantErr bool
	}{
		{"home", PageHome, false},
		{"Search", PageSearch, false},
		{" postItem ", PagePostItem, false},
		{"settings", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePage(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownPage) {
				t.Errorf("ParsePage(%q): expected ErrUnknownPage, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParsePage(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestPostFormFor(t *testing.T) {
	tests := []struct {
		it       models.ItemType
		title    string
		priceVis bool
	}{
		{models.ItemTypeLost, "Post Lost Item", false},
		{models.ItemTypeFound, "Post Found Item", false},
		{models.ItemTypeSell, "Post Item for Sale", true},
		{"", "Post New Item", false},
	}
	for _, tt := range tests {
		f := PostFormFor(tt.it)
		if f.Title != tt.title || f.PriceVisible != tt.priceVis || f.PriceRequired != tt.priceVis {
			t.Errorf("PostFormFor(%q) = %+v", tt.it, f)
		}
	}
}

func TestNewNavigator_StartsAtHome(t *testing.T) {
	n, _, _ := newNavigator(State{})
	if n.State().Page != PageHome {
		t.Fatalf("expected home, got %q", n.State().Page)
	}
}

func TestGoto_HomeRendersRecent(t *testing.T) {
	n, dir, rec := newNavigator(State{})
	ctx := context.Background()
	for range 5 {
		dir.store.Insert(ctx, models.ValidatedListing{
			Title: "t", Description: "d", Category: models.CategoryOther,
			Location: "l", ContactInfo: "a@b.co", ItemType: models.ItemTypeFound,
		})
	}

	v := n.Goto(ctx, PageHome, GotoOptions{})
	if len(v.Listings) != domainsvcs.RecentLimit {
		t.Fatalf("expected %d recent listings, got %d", domainsvcs.RecentLimit, len(v.Listings))
	}
	if v.Listings[0].ID != 8 {
		t.Errorf("expected newest listing first, got %d", v.Listings[0].ID)
	}
	if len(rec.calls) != 1 || rec.calls[0].page != PageHome {
		t.Fatalf("expected one home render, got %+v", rec.calls)
	}
}

func TestGoto_SearchShowsAllActiveAndKeepsForm(t *testing.T) {
	n, _, rec := newNavigator(State{Filter: domainsvcs.RawFilter{Keywords: "keys"}})

	v := n.Goto(context.Background(), PageSearch, GotoOptions{})
	if len(v.Listings) != 3 {
		t.Fatalf("expected all 3 active listings, got %d", len(v.Listings))
	}
	if v.Filter.Keywords != "keys" {
		t.Errorf("filter form must be kept on entry, got %+v", v.Filter)
	}
	if len(rec.calls) != 1 || rec.calls[0].page != PageSearch {
		t.Fatalf("unexpected renders: %+v", rec.calls)
	}
}

func TestGoto_ReentryRerunsEffects(t *testing.T) {
	n, _, rec := newNavigator(State{})
	ctx := context.Background()
	n.Goto(ctx, PageHome, GotoOptions{})
	n.Goto(ctx, PageHome, GotoOptions{})
	if len(rec.calls) != 2 {
		t.Fatalf("expected effects to run twice, got %d renders", len(rec.calls))
	}
}

func TestGoto_PostItemHint(t *testing.T) {
	n, _, rec := newNavigator(State{})
	ctx := context.Background()

	v := n.Goto(ctx, PagePostItem, GotoOptions{ItemType: itemType(models.ItemTypeSell)})
	if v.PostForm == nil || v.PostForm.Title != "Post Item for Sale" || !v.PostForm.PriceRequired {
		t.Fatalf("unexpected post form: %+v", v.PostForm)
	}
	if len(rec.calls) != 0 {
		t.Errorf("post page renders no listings, got %+v", rec.calls)
	}

	n.Goto(ctx, PageHome, GotoOptions{})
	v = n.Goto(ctx, PagePostItem, GotoOptions{})
	if v.PostForm.ItemType != models.ItemTypeSell {
		t.Errorf("selection must survive navigation without a hint, got %q", v.PostForm.ItemType)
	}
}

func TestGoto_UnknownPageIsNoop(t *testing.T) {
	n, _, rec := newNavigator(State{Page: PageSearch})
	v := n.Goto(context.Background(), Page("settings"), GotoOptions{})
	if v.Page != PageSearch || n.State().Page != PageSearch {
		t.Fatalf("unknown page must not change state, got %q", n.State().Page)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("unknown page must not run effects, got %+v", rec.calls)
	}
}

func TestSelectType(t *testing.T) {
	n, _, _ := newNavigator(State{Page: PagePostItem, PostType: models.ItemTypeSell})
	v := n.SelectType(context.Background(), models.ItemTypeLost)
	if v.PostForm.PriceVisible || v.PostForm.Title != "Post Lost Item" {
		t.Fatalf("unexpected post form: %+v", v.PostForm)
	}
}

func TestSearch_FiltersAndRecordsForm(t *testing.T) {
	n, _, _ := newNavigator(State{})
	ctx := context.Background()

	v, err := n.Search(ctx, domainsvcs.RawFilter{Type: "found", Category: "Keys"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(v.Listings) != 1 || v.Listings[0].Title != "Found Car Keys" {
		t.Fatalf("unexpected results: %+v", v.Listings)
	}
	if n.State().Page != PageSearch || n.State().Filter.Category != "Keys" {
		t.Fatalf("state not recorded: %+v", n.State())
	}

	v, err = n.Search(ctx, domainsvcs.RawFilter{Keywords: "ihpone"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !v.NoResults || len(v.Listings) != 0 {
		t.Fatalf("expected no results, got %+v", v)
	}
}

func TestSearch_InvalidFilterLeavesState(t *testing.T) {
	n, _, rec := newNavigator(State{Page: PageHome})
	_, err := n.Search(context.Background(), domainsvcs.RawFilter{Type: "trade"})
	if !errors.Is(err, listingdomain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	if n.State().Page != PageHome || n.State().Filter != (domainsvcs.RawFilter{}) {
		t.Fatalf("state changed on error: %+v", n.State())
	}
	if len(rec.calls) != 0 {
		t.Fatal("nothing must render on error")
	}
}

func TestClearFilters(t *testing.T) {
	n, _, _ := newNavigator(State{Page: PageSearch, Filter: domainsvcs.RawFilter{Location: "downtown"}})
	v := n.ClearFilters(context.Background())
	if n.State().Filter != (domainsvcs.RawFilter{}) || v.Filter != (domainsvcs.RawFilter{}) {
		t.Fatalf("filters not cleared: %+v", n.State().Filter)
	}
	if len(v.Listings) != 3 {
		t.Fatalf("expected all active listings, got %d", len(v.Listings))
	}
}

func TestSubmit_Success(t *testing.T) {
	n, dir, _ := newNavigator(State{Page: PagePostItem, PostType: models.ItemTypeLost})
	ctx := context.Background()

	v, err := n.Submit(ctx, domainsvcs.RawListing{
		Title: "Lost Wallet", Description: "Brown leather wallet", Category: "Bags/Wallets",
		Location: "Central Station", ContactInfo: "owner@email.com", ItemType: "lost",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if v.Page != PageHome || v.Message != PostedMessage {
		t.Fatalf("expected home with confirmation, got %+v", v)
	}
	if v.Posted == nil || v.Posted.ID != 4 || v.Posted.DatePosted.String() != "2024-09-11" {
		t.Fatalf("unexpected posted listing: %+v", v.Posted)
	}
	if v.Listings[0].ID != 4 {
		t.Errorf("new listing must head the recent list, got %d", v.Listings[0].ID)
	}
	if n.State().PostType != "" {
		t.Errorf("post form must reset, got %q", n.State().PostType)
	}
	if dir.store.Len() != 4 {
		t.Errorf("expected 4 listings, got %d", dir.store.Len())
	}
}

func TestSubmit_RejectionLeavesStateAndStore(t *testing.T) {
	n, dir, _ := newNavigator(State{Page: PagePostItem, PostType: models.ItemTypeSell})
	before := n.State()

	v, err := n.Submit(context.Background(), domainsvcs.RawListing{
		Title: "Bike", Description: "Red bike", Category: "Sports Equipment",
		Location: "Park", ContactInfo: "x@y.z", ItemType: "sell",
	})
	if !errors.Is(err, listingdomain.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if v.Message != "Please enter a valid price for items for sale." {
		t.Errorf("unexpected message %q", v.Message)
	}
	if n.State() != before {
		t.Errorf("state changed: %+v -> %+v", before, n.State())
	}
	if dir.store.Len() != 3 || dir.posts != 0 {
		t.Errorf("store mutated on rejection")
	}
}
