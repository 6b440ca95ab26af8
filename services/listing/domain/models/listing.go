package models

// Listing is the core aggregate for this bounded context: a single lost,
// found or for-sale posting.
//
// Price is non-nil exactly when ItemType is ItemTypeSell.
type Listing struct {
	ID          int64 // assigned by the store, strictly increasing
	Title       string
	Description string
	Category    Category
	Location    string
	ContactInfo string
	ItemType    ItemType
	Price       *Price
	DatePosted  Date // set by the store at insert, never user-supplied
	Status      Status
}

// IsActive reports whether the listing is visible to browse and search.
func (l Listing) IsActive() bool {
	switch l.Status {
	case StatusActive:
		return true
	case StatusResolved:
		return false
	default:
		return false
	}
}

// Clone returns a deep copy so callers never share the Price pointer.
func (l Listing) Clone() Listing {
	if l.Price != nil {
		p := *l.Price
		l.Price = &p
	}
	return l
}

// ValidatedListing is a draft that passed the validation pipeline. It is the
// only input the store accepts for insertion.
type ValidatedListing struct {
	Title       string
	Description string
	Category    Category
	Location    string
	ContactInfo string
	ItemType    ItemType
	Price       *Price
}
