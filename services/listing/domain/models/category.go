package models

import (
	"fmt"
	"strings"
)

// Category is the closed set of listing categories.
type Category string

const (
	CategoryElectronics     Category = "Electronics"
	CategoryClothing        Category = "Clothing"
	CategoryDocuments       Category = "Documents"
	CategoryKeys            Category = "Keys"
	CategoryJewelry         Category = "Jewelry"
	CategoryBooks           Category = "Books"
	CategorySportsEquipment Category = "Sports Equipment"
	CategoryBagsWallets     Category = "Bags/Wallets"
	CategoryOther           Category = "Other"
)

var categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryDocuments,
	CategoryKeys,
	CategoryJewelry,
	CategoryBooks,
	CategorySportsEquipment,
	CategoryBagsWallets,
	CategoryOther,
}

// Categories returns every Category in display order. The slice is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches s against the fixed set, ignoring case and
// surrounding whitespace, and returns the canonical Category.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// String returns the underlying string value.
func (c Category) String() string {
	return string(c)
}
