package seeders

import (
	"gorm.io/gorm"

	"github.com/quickcart/quickcart/app/models"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a small demo catalogue. It is a no-op when products
// already exist, so re-running `quickcart seed` is safe.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []models.Product{
		{Name: "Pen", Price: 10.0, Quantity: 100},
		{Name: "Notebook", Price: 45.0, Quantity: 60},
		{Name: "Stapler", Price: 120.0, Quantity: 12},
		{Name: "Highlighter", Price: 25.0, Quantity: 4},
	}
	return db.Create(&demo).Error
}
