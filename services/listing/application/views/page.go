package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ghuser/lostfound/services/listing/domain/models"
)

// Page is one of the three screens of the directory.
type Page string

const (
	PageHome     Page = "home"
	PageSearch   Page = "search"
	PagePostItem Page = "postItem"
)

// ErrUnknownPage is returned by ParsePage for names outside the closed set.
var ErrUnknownPage = errors.New("unknown page")

// ParsePage accepts the page names case-insensitively.
func ParsePage(s string) (Page, error) {
	for _, p := range []Page{PageHome, PageSearch, PagePostItem} {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
}

func (p Page) String() string { return string(p) }

// PostForm describes how the post form presents itself for a selected type.
type PostForm struct {
	ItemType      models.ItemType `json:"item_type,omitempty"`
	Title         string          `json:"title"`
	PriceVisible  bool            `json:"price_visible"`
	PriceRequired bool            `json:"price_required"`
}

// PostFormFor returns the form layout for t. The zero ItemType means no type
// has been chosen yet.
func PostFormFor(t models.ItemType) PostForm {
	f := PostForm{ItemType: t}
	switch t {
	case models.ItemTypeLost:
		f.Title = "Post Lost Item"
	case models.ItemTypeFound:
		f.Title = "Post Found Item"
	case models.ItemTypeSell:
		f.Title = "Post Item for Sale"
		f.PriceVisible = true
		f.PriceRequired = true
	default:
		f.Title = "Post New Item"
	}
	return f
}
