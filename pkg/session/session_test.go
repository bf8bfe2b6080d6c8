package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcart/quickcart/pkg/session"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := session.NewMemoryStore()

	require.NoError(t, store.Set("abc", map[string]interface{}{"user": "admin"}, time.Minute))

	data, ok := store.Get("abc")
	require.True(t, ok)
	assert.Equal(t, "admin", data["user"])

	require.NoError(t, store.Del("abc"))
	_, ok = store.Get("abc")
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := session.NewMemoryStore()

	require.NoError(t, store.Set("abc", map[string]interface{}{"user": "admin"}, 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok := store.Get("abc")
	assert.False(t, ok)
}

func TestMiddlewareCreatesAndReloadsSession(t *testing.T) {
	store := session.NewMemoryStore()
	opts := session.DefaultOptions()

	handler := session.Middleware(store, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		if _, ok := sess.GetString("user"); !ok {
			sess.Set("user", "admin")
		}
		require.NoError(t, sess.Save(w))
	}))

	// First request: no cookie, a fresh session is created and saved.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, opts.CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	// Second request carries the cookie and sees the stored value.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	var user string
	verify := session.Middleware(store, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ = session.FromCtx(r).GetString("user")
	}))
	verify.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "admin", user)
}

func TestFlashIsOneShot(t *testing.T) {
	store := session.NewMemoryStore()
	sess := newSession(t, store)

	sess.Flash("error", "Not enough stock")

	v, ok := sess.GetFlash("error")
	require.True(t, ok)
	assert.Equal(t, "Not enough stock", v)

	_, ok = sess.GetFlash("error")
	assert.False(t, ok)
}

func TestInvalidateDropsAllKeys(t *testing.T) {
	store := session.NewMemoryStore()
	sess := newSession(t, store)

	sess.Set("user", "admin")
	sess.Invalidate()

	_, ok := sess.GetString("user")
	assert.False(t, ok)
}

func TestSaveIsNoOpWhenUnchanged(t *testing.T) {
	store := session.NewMemoryStore()
	sess := newSession(t, store)

	rec := httptest.NewRecorder()
	require.NoError(t, sess.Save(rec))
	assert.Empty(t, rec.Result().Cookies())
}

// newSession runs a request through the middleware to obtain a live handle.
func newSession(t *testing.T, store session.Store) *session.Session {
	t.Helper()

	var sess *session.Session
	handler := session.Middleware(store, session.DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess = session.FromCtx(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, sess)
	return sess
}
