package services

import (
	"fmt"
	"strconv"

	pkgcache "github.com/ghuser/lostfound/pkg/cache"
	"github.com/ghuser/lostfound/services/listing/domain/models"
)

func toCachedFeed(listings []models.Listing) []pkgcache.CachedListing {
	out := make([]pkgcache.CachedListing, len(listings))
	for i, l := range listings {
		c := pkgcache.CachedListing{
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
			c.Price = strconv.FormatFloat(l.Price.Float64(), 'f', -1, 64)
		}
		out[i] = c
	}
	return out
}

func fromCachedFeed(cached []pkgcache.CachedListing) ([]models.Listing, error) {
	out := make([]models.Listing, 0, len(cached))
	for _, c := range cached {
		l, err := fromCached(c)
		if err != nil {
			return nil, fmt.Errorf("listing %d: %w", c.ID, err)
		}
		out = append(out, l)
	}
	return out, nil
}

func fromCached(c pkgcache.CachedListing) (models.Listing, error) {
	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return models.Listing{}, err
	}
	itemType, err := models.ParseItemType(c.ItemType)
	if err != nil {
		return models.Listing{}, err
	}
	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return models.Listing{}, err
	}
	date, err := models.ParseDate(c.DatePosted)
	if err != nil {
		return models.Listing{}, err
	}
	l := models.Listing{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    category,
		Location:    c.Location,
		ContactInfo: c.ContactInfo,
		ItemType:    itemType,
		DatePosted:  date,
		Status:      status,
	}
	if c.Price != "" {
		p, err := models.ParsePrice(c.Price)
		if err != nil {
			return models.Listing{}, err
		}
		l.Price = &p
	}
	return l, nil
}
