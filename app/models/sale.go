package models

import "time"

// DateLayout is the calendar-date format used for SaleDate. Sales carry a
// date only, never a time of day.
const DateLayout = "2006-01-02"

// Sale records one transaction against a product. Total is the monetary
// amount frozen at sale time; it is never recomputed from the current price.
type Sale struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Total     float64   `gorm:"not null" json:"total"`
	SaleDate  string    `gorm:"size:10;index" json:"sale_date"`
	CreatedAt time.Time `json:"created_at"`
}

// Today returns the current calendar date in SaleDate format.
func Today() string {
	return time.Now().Format(DateLayout)
}
