package memory

import "github.com/ghuser/lostfound/services/listing/domain/models"

// SeedListings returns the demo collection loaded at startup, newest first.
func SeedListings() []models.Listing {
	laptop := models.Price(450)
	return []models.Listing{
		{
			ID:          1,
			Title:       "Lost iPhone 13",
			Description: "Black iPhone 13 with cracked screen, lost near campus library",
			Category:    models.CategoryElectronics,
			Location:    "University Library",
			ContactInfo: "john@email.com",
			ItemType:    models.ItemTypeLost,
			DatePosted:  models.MustParseDate("2024-09-10"),
			Status:      models.StatusActive,
		},
		{
			ID:          2,
			Title:       "Found Car Keys",
			Description: "Set of car keys with Honda keychain found in parking lot",
			Category:    models.CategoryKeys,
			Location:    "Main Parking Lot",
			ContactInfo: "mary@email.com",
			ItemType:    models.ItemTypeFound,
			DatePosted:  models.MustParseDate("2024-09-09"),
			Status:      models.StatusActive,
		},
		{
			ID:          3,
			Title:       "Laptop for Sale",
			Description: "Dell laptop in good condition, 8GB RAM, 256GB SSD",
			Category:    models.CategoryElectronics,
			Location:    "Downtown",
			ContactInfo: "seller@email.com",
			ItemType:    models.ItemTypeSell,
			Price:       &laptop,
			DatePosted:  models.MustParseDate("2024-09-08"),
			Status:      models.StatusActive,
		},
	}
}
