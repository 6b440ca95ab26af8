package services

import (
	"errors"
	"testing"

	listingdomain "github.com/ghuser/lostfound/services/listing/domain"
	"github.com/ghuser/lostfound/services/listing/domain/models"
)

func strPtr(s string) *string { return &s }

func validRaw() RawListing {
	return RawListing{
		Title:       "Lost Wallet",
		Description: "Brown leather wallet",
		Category:    "Bags/Wallets",
		Location:    "Central Station",
		ContactInfo: "owner@email.com",
		ItemType:    "lost",
	}
}

func TestValidateListing_LostWithoutPrice(t *testing.T) {
	got, err := ValidateListing(validRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Price != nil {
		t.Fatalf("expected absent price, got %v", *got.Price)
	}
	if got.ItemType != models.ItemTypeLost {
		t.Fatalf("expected lost, got %q", got.ItemType)
	}
	if got.Category != models.CategoryBagsWallets {
		t.Fatalf("expected Bags/Wallets, got %q", got.Category)
	}
}

func TestValidateListing_TrimsFields(t *testing.T) {
	raw := validRaw()
	raw.Title = "  Lost Wallet  "
	raw.Description = "\tBrown leather wallet\n"
	raw.Location = " Central Station "
	raw.ContactInfo = " owner@email.com "

	got, err := ValidateListing(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Lost Wallet" || got.Description != "Brown leather wallet" ||
		got.Location != "Central Station" || got.ContactInfo != "owner@email.com" {
		t.Fatalf("fields not trimmed: %+v", got)
	}
}

func TestValidateListing_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawListing)
	}{
		{"title", func(r *RawListing) { r.Title = "" }},
		{"whitespace title", func(r *RawListing) { r.Title = "   " }},
		{"description", func(r *RawListing) { r.Description = "" }},
		{"category", func(r *RawListing) { r.Category = "" }},
		{"location", func(r *RawListing) { r.Location = "\t" }},
		{"contact_info", func(r *RawListing) { r.ContactInfo = "" }},
		{"item_type", func(r *RawListing) { r.ItemType = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)
			_, err := ValidateListing(raw)
			if !errors.Is(err, listingdomain.ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
		})
	}
}

// TestValidateListing_ShortCircuit verifies the first failing rule wins:
// a draft missing its title with a bad contact reports only the missing field.
func TestValidateListing_ShortCircuit(t *testing.T) {
	raw := validRaw()
	raw.Title = ""
	raw.ContactInfo = "not-an-email"

	_, err := ValidateListing(raw)
	if !errors.Is(err, listingdomain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if errors.Is(err, listingdomain.ErrInvalidContact) {
		t.Fatal("ErrInvalidContact must not be reported alongside ErrMissingField")
	}
}

func TestValidateListing_PriceBeforeContact(t *testing.T) {
	raw := validRaw()
	raw.ItemType = "sell"
	raw.ContactInfo = "not-an-email"

	_, err := ValidateListing(raw)
	if !errors.Is(err, listingdomain.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestValidateListing_SellPrice(t *testing.T) {
	tests := []struct {
		name    string
		price   *string
		want    models.Price
		wantErr bool
	}{
		{"valid", strPtr("450"), 450, false},
		{"decimal with spaces", strPtr(" 19.99 "), 19.99, false},
		{"absent", nil, 0, true},
		{"blank", strPtr(""), 0, true},
		{"negative", strPtr("-5"), 0, true},
		{"zero", strPtr("0"), 0, true},
		{"not a number", strPtr("cheap"), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw.ItemType = "sell"
			raw.Price = tt.price

			got, err := ValidateListing(raw)
			if tt.wantErr {
				if !errors.Is(err, listingdomain.ErrInvalidPrice) {
					t.Fatalf("expected ErrInvalidPrice, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Price == nil || *got.Price != tt.want {
				t.Fatalf("expected price %v, got %v", tt.want, got.Price)
			}
		})
	}
}

func TestValidateListing_NonSellDiscardsPrice(t *testing.T) {
	for _, it := range []string{"lost", "found"} {
		t.Run(it, func(t *testing.T) {
			raw := validRaw()
			raw.ItemType = it
			raw.Price = strPtr("-5")

			got, err := ValidateListing(raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Price != nil {
				t.Fatalf("expected price to be discarded, got %v", *got.Price)
			}
		})
	}
}

func TestValidateListing_Contact(t *testing.T) {
	tests := []struct {
		contact string
		wantErr bool
	}{
		{"john@email.com", false},
		{"a.b+c@sub.example.co.uk", false},
		{"john@email", true},
		{"john.email.com", true},
		{"john @email.com", true},
		{"@email.com", true},
		{"john@@email.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.contact, func(t *testing.T) {
			raw := validRaw()
			raw.ContactInfo = tt.contact
			_, err := ValidateListing(raw)
			if tt.wantErr != errors.Is(err, listingdomain.ErrInvalidContact) {
				t.Fatalf("ValidateListing(contact=%q) error = %v, wantErr = %v", tt.contact, err, tt.wantErr)
			}
		})
	}
}

func TestValidateListing_UnknownEnums(t *testing.T) {
	t.Run("category", func(t *testing.T) {
		raw := validRaw()
		raw.Category = "Furniture"
		if _, err := ValidateListing(raw); !errors.Is(err, listingdomain.ErrInvalidCategory) {
			t.Fatalf("expected ErrInvalidCategory, got %v", err)
		}
	})

	t.Run("item type", func(t *testing.T) {
		raw := validRaw()
		raw.ItemType = "trade"
		if _, err := ValidateListing(raw); !errors.Is(err, listingdomain.ErrInvalidItemType) {
			t.Fatalf("expected ErrInvalidItemType, got %v", err)
		}
	})
}
