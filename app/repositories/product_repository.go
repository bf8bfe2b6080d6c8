package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/quickcart/quickcart/app/models"
)

// Storage-level sentinels. Services pass these through so controllers can
// errors.Is against them.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrProductNotFound
	}
	return p, err
}

// All returns every product ordered by id.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("id").Find(&products).Error
	return products, err
}

// CatalogStats holds the dashboard aggregates over the product table.
type CatalogStats struct {
	TotalProducts int64
	TotalStock    int64
	TotalValue    float64
	LowStockCount int64
}

// Stats computes the catalogue aggregates in a single query.
func (r *ProductRepository) Stats() (CatalogStats, error) {
	var stats CatalogStats
	err := r.db.Model(&models.Product{}).
		Select(`COUNT(*) AS total_products,
			COALESCE(SUM(quantity), 0) AS total_stock,
			COALESCE(SUM(price * quantity), 0) AS total_value,
			COALESCE(SUM(CASE WHEN quantity <= ? THEN 1 ELSE 0 END), 0) AS low_stock_count`,
			models.LowStockThreshold).
		Scan(&stats).Error
	return stats, err
}
