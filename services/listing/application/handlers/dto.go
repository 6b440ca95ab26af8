package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ghuser/lostfound/services/listing/application/views"
	"github.com/ghuser/lostfound/services/listing/domain/models"
	domainsvcs "github.com/ghuser/lostfound/services/listing/domain/services"
)

// RawPrice accepts a JSON number, a numeric string, or null. Its text is
// handed to the validation pipeline unparsed.
type RawPrice struct {
	text *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *RawPrice) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		p.text = nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		p.text = &s
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("price must be a number or string: %w", err)
		}
		s := n.String()
		p.text = &s
	}
	return nil
}

// Text returns the raw price text, or nil when absent.
func (p RawPrice) Text() *string { return p.text }

// CreateListingRequest is the request body for POST /listings and
// POST /view/submit. Required-field, enum, price and contact rules are
// enforced by the validation pipeline, not by tags.
type CreateListingRequest struct {
	Title       string   `json:"title" validate:"max=200" example:"Lost Wallet"`
	Description string   `json:"description" validate:"max=2000" example:"Brown leather wallet"`
	Category    string   `json:"category" validate:"max=64" example:"Bags/Wallets"`
	Location    string   `json:"location" validate:"max=200" example:"Central Station"`
	ContactInfo string   `json:"contact_info" validate:"max=254" example:"owner@email.com"`
	ItemType    string   `json:"item_type" validate:"max=16" example:"lost"`
	Price       RawPrice `json:"price" swaggertype:"number" example:"450"`
} // @name CreateListingRequest

func (r CreateListingRequest) raw() domainsvcs.RawListing {
	return domainsvcs.RawListing{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		ContactInfo: r.ContactInfo,
		ItemType:    r.ItemType,
		Price:       r.Price.Text(),
	}
}

// ListingResponse is the card representation of a listing.
type ListingResponse struct {
	ID          int64    `json:"id" example:"3"`
	Title       string   `json:"title" example:"Laptop for Sale"`
	Description string   `json:"description" example:"Dell laptop in good condition, 8GB RAM, 256GB SSD"`
	Category    string   `json:"category" example:"Electronics"`
	Location    string   `json:"location" example:"Downtown"`
	ContactInfo string   `json:"contact_info" example:"seller@email.com"`
	ItemType    string   `json:"item_type" example:"sell"`
	Price       *float64 `json:"price" example:"450"`
	DatePosted  string   `json:"date_posted" example:"2024-09-08"`
	Status      string   `json:"status" example:"active"`
} // @name ListingResponse

func toResponse(l models.Listing) ListingResponse {
	r := ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category.String(),
		Location:    l.Location,
		ContactInfo: l.ContactInfo,
		ItemType:    l.ItemType.String(),
		DatePosted:  l.DatePosted.String(),
		Status:      l.Status.String(),
	}
	if l.Price != nil {
		v := l.Price.Float64()
		r.Price = &v
	}
	return r
}

func toResponses(listings []models.Listing) []ListingResponse {
	out := make([]ListingResponse, len(listings))
	for i, l := range listings {
		out[i] = toResponse(l)
	}
	return out
}

// ListingsResponse wraps a result set.
type ListingsResponse struct {
	Listings []ListingResponse `json:"listings"`
	Count    int               `json:"count" example:"3"`
} // @name ListingsResponse

func newListingsResponse(listings []models.Listing) ListingsResponse {
	return ListingsResponse{Listings: toResponses(listings), Count: len(listings)}
}

// FilterForm echoes the visitor's search form.
type FilterForm struct {
	Keywords string `json:"keywords" example:"keys"`
	Type     string `json:"type" example:"found"`
	Category string `json:"category" example:"Keys"`
	Location string `json:"location" example:"parking"`
} // @name FilterForm

func (f FilterForm) raw() domainsvcs.RawFilter {
	return domainsvcs.RawFilter{Keywords: f.Keywords, Type: f.Type, Category: f.Category, Location: f.Location}
}

func filterForm(r domainsvcs.RawFilter) FilterForm {
	return FilterForm{Keywords: r.Keywords, Type: r.Type, Category: r.Category, Location: r.Location}
}

// NavigateRequest is the request body for POST /view/navigate.
type NavigateRequest struct {
	Page     string `json:"page" validate:"required,max=16" example:"postItem"`
	ItemType string `json:"item_type,omitempty" validate:"max=16" example:"sell"`
} // @name NavigateRequest

// SelectTypeRequest is the request body for POST /view/post-type.
type SelectTypeRequest struct {
	ItemType string `json:"item_type" validate:"max=16" example:"lost"`
} // @name SelectTypeRequest

// ViewResponse is the visitor's current screen.
type ViewResponse struct {
	Page      string            `json:"page" example:"home"`
	Listings  []ListingResponse `json:"listings"`
	NoResults bool              `json:"no_results"`
	Filter    FilterForm        `json:"filter"`
	PostForm  *views.PostForm   `json:"post_form,omitempty"`
	Posted    *ListingResponse  `json:"posted,omitempty"`
	Message   string            `json:"message,omitempty" example:"Your item has been posted successfully!"`
} // @name ViewResponse

// CategoriesResponse lists the closed category set in display order.
type CategoriesResponse struct {
	Categories []string `json:"categories" example:"Electronics,Keys"`
} // @name CategoriesResponse

// ItemTypesResponse lists the item types with the post form each one opens.
type ItemTypesResponse struct {
	ItemTypes []views.PostForm `json:"item_types"`
} // @name ItemTypesResponse

func parseLimit(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("limit %q is not an integer", s)
	}
	return n, nil
}
