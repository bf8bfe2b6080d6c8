package controllers_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quickcart/quickcart/app/models"
	"github.com/quickcart/quickcart/internal/server"
	"github.com/quickcart/quickcart/pkg/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Sale{}))

	ts := httptest.NewServer(server.Handler(db, session.NewMemoryStore()))
	t.Cleanup(ts.Close)
	return ts, db
}

// loggedInClient authenticates with the default development credentials and
// returns a client carrying the session cookie.
func loggedInClient(t *testing.T, ts *httptest.Server) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"username": {"admin"},
		"password": {"1234"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode) // followed redirect to /
	return client
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestAnonymousRequestsRedirectToLogin(t *testing.T) {
	ts, _ := newTestServer(t)
	client := noRedirectClient()

	gated := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/sales"},
		{http.MethodGet, "/export_sales"},
		{http.MethodGet, "/invoice/1"},
		{http.MethodPost, "/add"},
		{http.MethodPost, "/sell/1"},
		{http.MethodPost, "/delete_sale/1"},
		{http.MethodPost, "/reset_today"},
	}

	for _, route := range gated {
		req, err := http.NewRequest(route.method, ts.URL+route.path, nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusFound, resp.StatusCode, "%s %s", route.method, route.path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), "%s %s", route.method, route.path)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.PostForm(ts.URL+"/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid Credentials", body(t, resp))
}

func TestLoginLogoutCycle(t *testing.T) {
	ts, _ := newTestServer(t)
	client := loggedInClient(t, ts)

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "admin")

	resp, err = client.Get(ts.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()

	// Session is gone: the dashboard bounces back to the login form.
	resp, err = client.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Contains(t, body(t, resp), "Sign in")
}

func TestAddSellAndDashboardFlow(t *testing.T) {
	ts, db := newTestServer(t)
	client := loggedInClient(t, ts)

	resp, err := client.PostForm(ts.URL+"/add", url.Values{
		"name":     {"Pen"},
		"price":    {"10.0"},
		"quantity": {"100"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	var pen models.Product
	require.NoError(t, db.First(&pen, "name = ?", "Pen").Error)
	assert.Equal(t, 100, pen.Quantity)

	resp, err = client.PostForm(ts.URL+"/sell/1", url.Values{
		"sell_quantity": {"5"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	require.NoError(t, db.First(&pen, pen.ID).Error)
	assert.Equal(t, 95, pen.Quantity)

	var sale models.Sale
	require.NoError(t, db.First(&sale).Error)
	assert.Equal(t, 50.0, sale.Total)
	assert.Equal(t, models.Today(), sale.SaleDate)

	resp, err = client.Get(ts.URL + "/")
	require.NoError(t, err)
	page := body(t, resp)
	assert.Contains(t, page, "Pen")
	assert.Contains(t, page, "95")
}

func TestOversellFlashesAndChangesNothing(t *testing.T) {
	ts, db := newTestServer(t)
	client := loggedInClient(t, ts)

	resp, err := client.PostForm(ts.URL+"/add", url.Values{
		"name":     {"Stapler"},
		"price":    {"120"},
		"quantity": {"2"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	// The redirect is followed, so the flash lands on the dashboard render.
	resp, err = client.PostForm(ts.URL+"/sell/1", url.Values{
		"sell_quantity": {"5"},
	})
	require.NoError(t, err)
	assert.Contains(t, body(t, resp), "Not enough stock")

	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteSaleAndResetToday(t *testing.T) {
	ts, db := newTestServer(t)
	client := loggedInClient(t, ts)

	resp, err := client.PostForm(ts.URL+"/add", url.Values{
		"name": {"Pen"}, "price": {"10"}, "quantity": {"100"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.PostForm(ts.URL+"/sell/1", url.Values{"sell_quantity": {"4"}})
	require.NoError(t, err)
	resp.Body.Close()

	var sale models.Sale
	require.NoError(t, db.First(&sale).Error)

	resp, err = client.PostForm(ts.URL+"/delete_sale/1", nil)
	require.NoError(t, err)
	resp.Body.Close()

	var pen models.Product
	require.NoError(t, db.First(&pen).Error)
	assert.Equal(t, 100, pen.Quantity)

	// Deleting again is a silent no-op.
	resp, err = client.PostForm(ts.URL+"/delete_sale/1", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, db.First(&pen).Error)
	assert.Equal(t, 100, pen.Quantity)

	// Sell again, then reset today's sales.
	resp, err = client.PostForm(ts.URL+"/sell/1", url.Values{"sell_quantity": {"1"}})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.PostForm(ts.URL+"/reset_today", nil)
	require.NoError(t, err)
	resp.Body.Close()

	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestExportSalesCSV(t *testing.T) {
	ts, _ := newTestServer(t)
	client := loggedInClient(t, ts)

	resp, err := client.PostForm(ts.URL+"/add", url.Values{
		"name": {"Pen"}, "price": {"10"}, "quantity": {"100"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.PostForm(ts.URL+"/sell/1", url.Values{"sell_quantity": {"5"}})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/export_sales")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "sales_report.csv")

	lines := strings.Split(strings.TrimRight(body(t, resp), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Sale ID,Product,Quantity,Total,Date", lines[0])
	assert.Contains(t, lines[1], "Pen")
}

func TestInvoiceDownloadAndNotFound(t *testing.T) {
	ts, _ := newTestServer(t)
	client := loggedInClient(t, ts)

	resp, err := client.Get(ts.URL + "/invoice/99")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invoice not found", body(t, resp))

	resp, err = client.PostForm(ts.URL+"/add", url.Values{
		"name": {"Pen"}, "price": {"10"}, "quantity": {"100"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.PostForm(ts.URL+"/sell/1", url.Values{"sell_quantity": {"5"}})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/invoice/1")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice_1.pdf")
	assert.True(t, strings.HasPrefix(body(t, resp), "%PDF"))
}

func TestAddProductValidationFlash(t *testing.T) {
	ts, db := newTestServer(t)
	client := loggedInClient(t, ts)

	resp, err := client.PostForm(ts.URL+"/add", url.Values{
		"name":     {"Pen"},
		"price":    {"not-a-number"},
		"quantity": {"100"},
	})
	require.NoError(t, err)
	assert.Contains(t, body(t, resp), "price")

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}
