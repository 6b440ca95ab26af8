package models

import (
	"fmt"
	"strings"
)

// ItemType is the closed set of listing kinds.
type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
	ItemTypeSell  ItemType = "sell"
)

// ItemTypes returns every ItemType in display order.
func ItemTypes() []ItemType {
	return []ItemType{ItemTypeLost, ItemTypeFound, ItemTypeSell}
}

// ParseItemType converts s (case-insensitive) into an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch t := ItemType(strings.ToLower(strings.TrimSpace(s))); t {
	case ItemTypeLost, ItemTypeFound, ItemTypeSell:
		return t, nil
	default:
		return "", fmt.Errorf("unknown item type %q", s)
	}
}

// RequiresPrice reports whether listings of this type must carry a price.
func (t ItemType) RequiresPrice() bool {
	switch t {
	case ItemTypeSell:
		return true
	case ItemTypeLost, ItemTypeFound:
		return false
	default:
		return false
	}
}

// String returns the underlying string value.
func (t ItemType) String() string {
	return string(t)
}
