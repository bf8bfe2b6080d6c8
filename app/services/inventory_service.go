package services

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/quickcart/quickcart/app/models"
	"github.com/quickcart/quickcart/app/repositories"
	"github.com/quickcart/quickcart/pkg/validate"
)

// Re-exported storage sentinels so controllers depend on services only.
var (
	ErrProductNotFound   = repositories.ErrProductNotFound
	ErrSaleNotFound      = repositories.ErrSaleNotFound
	ErrInsufficientStock = repositories.ErrInsufficientStock
)

// AddProductInput carries the raw add-product form fields. Price and
// Quantity stay strings until validation passes.
type AddProductInput struct {
	Name     string `form:"name"     validate:"required,max=255"`
	Price    string `form:"price"    validate:"required,numeric,gte=0"`
	Quantity string `form:"quantity" validate:"required,integer,gte=0"`
}

// ValidationError carries the per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// InventoryService owns the product catalogue and the stock-mutating
// operations.
type InventoryService struct {
	products *repositories.ProductRepository
	sales    *repositories.SaleRepository
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{
		products: repositories.NewProductRepository(db),
		sales:    repositories.NewSaleRepository(db),
	}
}

// AddProduct validates the form input and inserts the product.
func (s *InventoryService) AddProduct(input AddProductInput) (models.Product, error) {
	if errs := validate.Struct(input); validate.HasErrors(errs) {
		return models.Product{}, &ValidationError{Fields: errs}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(input.Price), 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("parse price: %w", err)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(input.Quantity))
	if err != nil {
		return models.Product{}, fmt.Errorf("parse quantity: %w", err)
	}

	p := models.Product{
		Name:     strings.TrimSpace(input.Name),
		Price:    price,
		Quantity: qty,
	}
	if err := s.products.Create(&p); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Sell records a sale of qty units dated today. The total is snapshotted
// from the current price. Fails with ErrProductNotFound or
// ErrInsufficientStock; in both cases no state changes.
func (s *InventoryService) Sell(productID uint, qty int) (models.Sale, error) {
	if qty <= 0 {
		return models.Sale{}, fmt.Errorf("%w: quantity must be positive", ErrInsufficientStock)
	}
	return s.sales.Sell(productID, qty, models.Today())
}

// DeleteSale reverses a sale, restoring the product's stock.
func (s *InventoryService) DeleteSale(saleID uint) error {
	return s.sales.Delete(saleID)
}

// ResetToday deletes all sales dated today and returns how many were
// removed. Destructive and unconditional, as the reset button promises.
func (s *InventoryService) ResetToday() (int64, error) {
	return s.sales.DeleteByDate(models.Today())
}

// Dashboard is everything the index view renders.
type Dashboard struct {
	Products          []models.Product
	TotalProducts     int64
	TotalStock        int64
	TotalValue        float64
	LowStockCount     int64
	TodaySales        float64
	TotalTransactions int64
}

// DashboardData assembles the product listing, catalogue aggregates, and
// today's sales summary.
func (s *InventoryService) DashboardData() (Dashboard, error) {
	products, err := s.products.All()
	if err != nil {
		return Dashboard{}, fmt.Errorf("list products: %w", err)
	}

	stats, err := s.products.Stats()
	if err != nil {
		return Dashboard{}, fmt.Errorf("catalog stats: %w", err)
	}

	today, err := s.sales.SummaryForDate(models.Today())
	if err != nil {
		return Dashboard{}, fmt.Errorf("today summary: %w", err)
	}

	return Dashboard{
		Products:          products,
		TotalProducts:     stats.TotalProducts,
		TotalStock:        stats.TotalStock,
		TotalValue:        stats.TotalValue,
		LowStockCount:     stats.LowStockCount,
		TodaySales:        today.Revenue,
		TotalTransactions: today.Transactions,
	}, nil
}
