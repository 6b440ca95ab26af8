// Package services contains stateless domain services for the listing bounded
// context. Domain services enforce business rules that operate purely on
// domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"fmt"
	"regexp"
	"strings"

	listingdomain "github.com/ghuser/lostfound/services/listing/domain"
	"github.com/ghuser/lostfound/services/listing/domain/models"
)

// contactPattern is a minimal local@domain.tld shape check, not RFC 5322.
var contactPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RawListing is a draft as captured from a user form. Price is nil when the
// field was not submitted at all.
type RawListing struct {
	Title       string
	Description string
	Category    string
	Location    string
	ContactInfo string
	ItemType    string
	Price       *string
}

// ValidateListing decides whether a draft may become a Listing.
//
// Rules run in order and the first failure wins:
//  1. title, description, category, location, contact_info and item_type
//     must be non-empty after trimming (ErrMissingField)
//  2. category and item_type must name a known value (ErrInvalidCategory,
//     ErrInvalidItemType)
//  3. sell listings need a price > 0 (ErrInvalidPrice); other types drop
//     any submitted price
//  4. contact_info must look like local@domain.tld (ErrInvalidContact)
func ValidateListing(raw RawListing) (models.ValidatedListing, error) {
	d := RawListing{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Category:    strings.TrimSpace(raw.Category),
		Location:    strings.TrimSpace(raw.Location),
		ContactInfo: strings.TrimSpace(raw.ContactInfo),
		ItemType:    strings.TrimSpace(raw.ItemType),
		Price:       raw.Price,
	}

	if err := requireFields(d); err != nil {
		return models.ValidatedListing{}, err
	}

	category, err := models.ParseCategory(d.Category)
	if err != nil {
		return models.ValidatedListing{}, fmt.Errorf("%w: %w", listingdomain.ErrInvalidCategory, err)
	}

	itemType, err := models.ParseItemType(d.ItemType)
	if err != nil {
		return models.ValidatedListing{}, fmt.Errorf("%w: %w", listingdomain.ErrInvalidItemType, err)
	}

	price, err := validatePrice(itemType, d.Price)
	if err != nil {
		return models.ValidatedListing{}, err
	}

	if !contactPattern.MatchString(d.ContactInfo) {
		return models.ValidatedListing{}, fmt.Errorf("%w: expected an address like name@example.com", listingdomain.ErrInvalidContact)
	}

	return models.ValidatedListing{
		Title:       d.Title,
		Description: d.Description,
		Category:    category,
		Location:    d.Location,
		ContactInfo: d.ContactInfo,
		ItemType:    itemType,
		Price:       price,
	}, nil
}

// requireFields reports the first empty field in form order.
func requireFields(d RawListing) error {
	fields := []struct {
		name  string
		value string
	}{
		{"title", d.Title},
		{"description", d.Description},
		{"category", d.Category},
		{"location", d.Location},
		{"contact_info", d.ContactInfo},
		{"item_type", d.ItemType},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s", listingdomain.ErrMissingField, f.name)
		}
	}
	return nil
}

func validatePrice(itemType models.ItemType, raw *string) (*models.Price, error) {
	if !itemType.RequiresPrice() {
		return nil, nil
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: price is required for items for sale", listingdomain.ErrInvalidPrice)
	}
	p, err := models.ParsePrice(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", listingdomain.ErrInvalidPrice, err)
	}
	return &p, nil
}
