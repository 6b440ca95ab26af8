package domain

import "errors"

// Sentinel errors for the listing domain. Use errors.Is() to check these.
// The validation sentinels are recoverable: the caller re-prompts the user
// and no state is mutated.
var (
	// ErrMissingField indicates a required field is empty after trimming.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidCategory indicates the category is not one of the fixed set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidItemType indicates the item type is not lost, found or sell.
	ErrInvalidItemType = errors.New("invalid item type")

	// ErrInvalidPrice indicates a sale listing without a positive price.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidContact indicates contact info not shaped like local@domain.tld.
	ErrInvalidContact = errors.New("invalid contact")

	// ErrInvalidFilter indicates a search filter carrying an unrecognised enum value.
	ErrInvalidFilter = errors.New("invalid search filter")

	// ErrListingNotFound indicates the requested listing does not exist.
	ErrListingNotFound = errors.New("listing not found")
)

// IsValidationError reports whether err is one of the Validation Pipeline rejections.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidItemType) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidContact)
}

// UserMessage returns the prompt shown to a person whose submission was
// rejected, or "" when err is not a validation rejection.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrInvalidItemType):
		return "Please fill in all required fields."
	case errors.Is(err, ErrInvalidPrice):
		return "Please enter a valid price for items for sale."
	case errors.Is(err, ErrInvalidContact):
		return "Please enter a valid email address."
	default:
		return ""
	}
}

// RejectionReason returns a stable metric label for a validation rejection.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrInvalidCategory):
		return "invalid_category"
	case errors.Is(err, ErrInvalidItemType):
		return "invalid_item_type"
	case errors.Is(err, ErrInvalidPrice):
		return "invalid_price"
	case errors.Is(err, ErrInvalidContact):
		return "invalid_contact"
	default:
		return "other"
	}
}
