package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcart/quickcart/pkg/router"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body)) //nolint:errcheck
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNamedRouteLookup(t *testing.T) {
	r := router.New()
	r.Get("/sales", "sales.index", ok("sales"))
	r.Get("/invoice/{sale_id}", "sales.invoice", ok("invoice"))

	path, found := r.Path("sales.index")
	require.True(t, found)
	assert.Equal(t, "/sales", path)

	_, found = r.Path("nope")
	assert.False(t, found)
}

func TestURLFillsParams(t *testing.T) {
	r := router.New()
	r.Get("/invoice/{sale_id}", "sales.invoice", ok("invoice"))

	url, err := r.URL("sales.invoice", map[string]string{"sale_id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/invoice/42", url)

	_, err = r.URL("sales.invoice", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	admin := r.Group("/admin", tag("outer"))
	admin.Get("/stats", "admin.stats", ok("stats"), tag("inner"))

	rec := get(t, r.Handler(), "/admin/stats")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stats", rec.Body.String())
	assert.Equal(t, []string{"outer", "inner"}, order)

	path, found := r.Path("admin.stats")
	require.True(t, found)
	assert.Equal(t, "/admin/stats", path)
}

func TestNestedGroups(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	v1 := api.Group("/v1")
	v1.Get("/products", "api.products", ok("products"))

	rec := get(t, r.Handler(), "/api/v1/products")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "products", rec.Body.String())
}

func TestRoutesSortedByPath(t *testing.T) {
	r := router.New()
	r.Post("/sell/{id}", "products.sell", ok(""))
	r.Get("/", "dashboard", ok(""))
	r.Get("/sales", "sales.index", ok(""))

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/", infos[0].Path)
	assert.Equal(t, "/sales", infos[1].Path)
	assert.Equal(t, "/sell/{id}", infos[2].Path)
}

func TestMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Post("/add", "products.add", ok(""))

	rec := get(t, r.Handler(), "/add")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
