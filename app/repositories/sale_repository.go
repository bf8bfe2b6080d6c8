package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/quickcart/quickcart/app/models"
)

// SaleRepository handles database operations for Sale, including the
// stock-mutating transactions.
type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Sell atomically decrements product stock and inserts a sale row dated
// `date`. The decrement is a conditional UPDATE guarded by the quantity
// check, so two concurrent sells cannot oversubscribe stock: whichever
// transaction loses the race sees zero affected rows and fails with
// ErrInsufficientStock.
func (r *SaleRepository) Sell(productID uint, qty int, date string) (models.Sale, error) {
	var sale models.Sale

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", productID, qty).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		sale = models.Sale{
			ProductID: productID,
			Quantity:  qty,
			Total:     p.Price * float64(qty),
			SaleDate:  date,
		}
		return tx.Create(&sale).Error
	})

	return sale, err
}

// Delete reverses a sale: the sold quantity is restored to the product and
// the sale row is removed, in one transaction. A missing sale id returns
// ErrSaleNotFound, which makes a second delete of the same id a no-op for
// callers that treat not-found as already-done.
func (r *SaleRepository) Delete(saleID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var s models.Sale
		if err := tx.First(&s, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", s.ProductID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", s.Quantity)).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Sale{}, s.ID).Error
	})
}

// DeleteByDate removes all sales dated `date` (the daily reset) and returns
// how many rows were removed. Stock is intentionally not restored; the reset
// clears the day's history, it does not reverse the transactions.
func (r *SaleRepository) DeleteByDate(date string) (int64, error) {
	res := r.db.Where("sale_date = ?", date).Delete(&models.Sale{})
	return res.RowsAffected, res.Error
}

// SaleRow is one line of the joined sales listing.
type SaleRow struct {
	SaleID   uint
	Product  string
	Quantity int
	Total    float64
	Date     string
}

// History returns the joined sales listing, newest first.
func (r *SaleRepository) History() ([]SaleRow, error) {
	var rows []SaleRow
	err := r.db.Table("sales").
		Select(`sales.id AS sale_id,
			products.name AS product,
			sales.quantity AS quantity,
			sales.total AS total,
			sales.sale_date AS date`).
		Joins("JOIN products ON sales.product_id = products.id").
		Order("sales.id DESC").
		Scan(&rows).Error
	return rows, err
}

// FindRow returns the joined listing row for a single sale.
func (r *SaleRepository) FindRow(saleID uint) (SaleRow, error) {
	var row SaleRow
	res := r.db.Table("sales").
		Select(`sales.id AS sale_id,
			products.name AS product,
			sales.quantity AS quantity,
			sales.total AS total,
			sales.sale_date AS date`).
		Joins("JOIN products ON sales.product_id = products.id").
		Where("sales.id = ?", saleID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return row, res.Error
	}
	if res.RowsAffected == 0 {
		return row, ErrSaleNotFound
	}
	return row, nil
}

// SalesSummary holds aggregate revenue and transaction count.
type SalesSummary struct {
	Revenue      float64
	Transactions int64
}

// Summary aggregates over all sales.
func (r *SaleRepository) Summary() (SalesSummary, error) {
	return r.summary(r.db.Model(&models.Sale{}))
}

// SummaryForDate aggregates over sales dated `date`.
func (r *SaleRepository) SummaryForDate(date string) (SalesSummary, error) {
	return r.summary(r.db.Model(&models.Sale{}).Where("sale_date = ?", date))
}

func (r *SaleRepository) summary(q *gorm.DB) (SalesSummary, error) {
	var s SalesSummary
	err := q.Select(`COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS transactions`).
		Scan(&s).Error
	return s, err
}
