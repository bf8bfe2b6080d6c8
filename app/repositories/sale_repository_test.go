package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quickcart/quickcart/app/models"
	"github.com/quickcart/quickcart/app/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one in-memory database per test

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Sale{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, qty int) models.Product {
	t.Helper()

	p := models.Product{Name: name, Price: price, Quantity: qty}
	require.NoError(t, repositories.NewProductRepository(db).Create(&p))
	return p
}

func TestSellDecrementsStockAndSnapshotsTotal(t *testing.T) {
	db := newTestDB(t)
	pen := seedProduct(t, db, "Pen", 10.0, 100)
	sales := repositories.NewSaleRepository(db)

	sale, err := sales.Sell(pen.ID, 5, "2026-09-01")
	require.NoError(t, err)

	assert.Equal(t, pen.ID, sale.ProductID)
	assert.Equal(t, 5, sale.Quantity)
	assert.Equal(t, 50.0, sale.Total)
	assert.Equal(t, "2026-09-01", sale.SaleDate)

	got, err := repositories.NewProductRepository(db).FindByID(pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 95, got.Quantity)
}

func TestSellInsufficientStockChangesNothing(t *testing.T) {
	db := newTestDB(t)
	pen := seedProduct(t, db, "Pen", 10.0, 3)
	sales := repositories.NewSaleRepository(db)

	_, err := sales.Sell(pen.ID, 5, "2026-09-01")
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	got, err := repositories.NewProductRepository(db).FindByID(pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSellUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	sales := repositories.NewSaleRepository(db)

	_, err := sales.Sell(999, 1, "2026-09-01")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestDeleteRestoresStockAndIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	pen := seedProduct(t, db, "Pen", 10.0, 100)
	sales := repositories.NewSaleRepository(db)

	sale, err := sales.Sell(pen.ID, 5, "2026-09-01")
	require.NoError(t, err)

	require.NoError(t, sales.Delete(sale.ID))

	got, err := repositories.NewProductRepository(db).FindByID(pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)

	// Second delete of the same id: not found, and stock untouched.
	err = sales.Delete(sale.ID)
	assert.ErrorIs(t, err, repositories.ErrSaleNotFound)

	got, err = repositories.NewProductRepository(db).FindByID(pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)
}

func TestDeleteByDateRemovesOnlyMatchingSales(t *testing.T) {
	db := newTestDB(t)
	pen := seedProduct(t, db, "Pen", 10.0, 100)
	sales := repositories.NewSaleRepository(db)

	_, err := sales.Sell(pen.ID, 1, "2026-09-01")
	require.NoError(t, err)
	_, err = sales.Sell(pen.ID, 2, "2026-09-01")
	require.NoError(t, err)
	_, err = sales.Sell(pen.ID, 3, "2026-08-31")
	require.NoError(t, err)

	removed, err := sales.DeleteByDate("2026-09-01")
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	rows, err := sales.History()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-31", rows[0].Date)
}

func TestHistoryIsNewestFirstAndJoined(t *testing.T) {
	db := newTestDB(t)
	pen := seedProduct(t, db, "Pen", 10.0, 100)
	pad := seedProduct(t, db, "Notepad", 30.0, 50)
	sales := repositories.NewSaleRepository(db)

	first, err := sales.Sell(pen.ID, 2, "2026-09-01")
	require.NoError(t, err)
	second, err := sales.Sell(pad.ID, 1, "2026-09-01")
	require.NoError(t, err)

	rows, err := sales.History()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, second.ID, rows[0].SaleID)
	assert.Equal(t, "Notepad", rows[0].Product)
	assert.Equal(t, first.ID, rows[1].SaleID)
	assert.Equal(t, "Pen", rows[1].Product)
}

func TestFindRowMissing(t *testing.T) {
	db := newTestDB(t)
	sales := repositories.NewSaleRepository(db)

	_, err := sales.FindRow(42)
	assert.ErrorIs(t, err, repositories.ErrSaleNotFound)
}

func TestSummaries(t *testing.T) {
	db := newTestDB(t)
	pen := seedProduct(t, db, "Pen", 10.0, 100)
	sales := repositories.NewSaleRepository(db)

	_, err := sales.Sell(pen.ID, 5, "2026-09-01") // 50.0
	require.NoError(t, err)
	_, err = sales.Sell(pen.ID, 2, "2026-08-31") // 20.0
	require.NoError(t, err)

	all, err := sales.Summary()
	require.NoError(t, err)
	assert.Equal(t, 70.0, all.Revenue)
	assert.EqualValues(t, 2, all.Transactions)

	day, err := sales.SummaryForDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 50.0, day.Revenue)
	assert.EqualValues(t, 1, day.Transactions)

	empty, err := sales.SummaryForDate("2020-01-01")
	require.NoError(t, err)
	assert.Zero(t, empty.Revenue)
	assert.Zero(t, empty.Transactions)
}

func TestCatalogStats(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "Pen", 10.0, 100)
	seedProduct(t, db, "Stapler", 120.0, 4)
	seedProduct(t, db, "Highlighter", 25.0, 5)
	products := repositories.NewProductRepository(db)

	stats, err := products.Stats()
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 109, stats.TotalStock)
	assert.Equal(t, 10.0*100+120.0*4+25.0*5, stats.TotalValue)
	assert.EqualValues(t, 2, stats.LowStockCount) // quantity <= 5
}
