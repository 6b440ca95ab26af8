package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestParseItemType(t *testing.T) {
	tests := []struct {
		input   string
		want    ItemType
		wantErr bool
	}{
		{"lost", ItemTypeLost, false},
		{"found", ItemTypeFound, false},
		{"sell", ItemTypeSell, false},
		{" SELL ", ItemTypeSell, false},
		{"", "", true},
		{"trade", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseItemType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseItemType(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseItemType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestItemType_RequiresPrice(t *testing.T) {
	for _, it := range ItemTypes() {
		want := it == ItemTypeSell
		if got := it.RequiresPrice(); got != want {
			t.Errorf("%s.RequiresPrice() = %v, want %v", it, got, want)
		}
	}
	if ItemType("bogus").RequiresPrice() {
		t.Error("unknown item type must not require a price")
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 9 {
		t.Fatalf("expected 9 categories, got %d", len(cats))
	}
	cats[0] = "mutated"
	if Categories()[0] != CategoryElectronics {
		t.Fatal("Categories must return a copy")
	}
}

func TestParseCategory(t *testing.T) {
	t.Run("canonical value", func(t *testing.T) {
		c, err := ParseCategory("Bags/Wallets")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c != CategoryBagsWallets {
			t.Fatalf("expected %q, got %q", CategoryBagsWallets, c)
		}
	})

	t.Run("case and whitespace folded", func(t *testing.T) {
		c, err := ParseCategory("  sports equipment ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c != CategorySportsEquipment {
			t.Fatalf("expected %q, got %q", CategorySportsEquipment, c)
		}
	})

	t.Run("unknown value returns error", func(t *testing.T) {
		if _, err := ParseCategory("Furniture"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus("resolved"); err != nil || s != StatusResolved {
		t.Fatalf("ParseStatus(resolved) = %q, %v", s, err)
	}
	if _, err := ParseStatus("archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    Price
		wantErr bool
	}{
		{"450", 450, false},
		{" 12.50 ", 12.5, false},
		{"0.01", 0.01, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"", 0, true},
		{"   ", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePrice(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewPrice_NonFinite(t *testing.T) {
	if _, err := NewPrice(math.Inf(1)); err == nil {
		t.Fatal("expected error for +Inf")
	}
}

func TestPrice_String(t *testing.T) {
	if got := Price(450).String(); got != "450.00" {
		t.Fatalf("expected 450.00, got %q", got)
	}
}

func TestDate(t *testing.T) {
	t.Run("DateOf drops time of day", func(t *testing.T) {
		d := DateOf(time.Date(2024, 9, 10, 23, 59, 0, 0, time.UTC))
		if d.String() != "2024-09-10" {
			t.Fatalf("expected 2024-09-10, got %s", d)
		}
		if !d.Equal(MustParseDate("2024-09-10")) {
			t.Fatal("expected equal dates")
		}
	})

	t.Run("JSON uses YYYY-MM-DD", func(t *testing.T) {
		data, err := json.Marshal(MustParseDate("2024-09-08"))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != `"2024-09-08"` {
			t.Fatalf("unexpected JSON: %s", data)
		}
		var d Date
		if err := json.Unmarshal(data, &d); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if d.String() != "2024-09-08" {
			t.Fatalf("unexpected date: %s", d)
		}
	})

	t.Run("malformed string returns error", func(t *testing.T) {
		if _, err := ParseDate("09/10/2024"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestListing_IsActive(t *testing.T) {
	if !(Listing{Status: StatusActive}).IsActive() {
		t.Error("active listing must be active")
	}
	if (Listing{Status: StatusResolved}).IsActive() {
		t.Error("resolved listing must not be active")
	}
	if (Listing{}).IsActive() {
		t.Error("zero status must not be active")
	}
}

func TestListing_Clone(t *testing.T) {
	p := Price(10)
	orig := Listing{ID: 1, Price: &p}
	c := orig.Clone()
	*c.Price = 99
	if *orig.Price != 10 {
		t.Fatal("Clone must not share the Price pointer")
	}
}
