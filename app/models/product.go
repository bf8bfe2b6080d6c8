package models

import "time"

// LowStockThreshold is the quantity at or below which a product is flagged
// low on the dashboard.
const LowStockThreshold = 5

// Product is a catalogue item with its current stock level.
//
// Quantity is kept non-negative by the guarded decrement in the sale
// repository; there is no separate database constraint.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Value is the monetary value of the stock on hand.
func (p Product) Value() float64 {
	return p.Price * float64(p.Quantity)
}

// LowStock reports whether the product is at or below the threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= LowStockThreshold
}
