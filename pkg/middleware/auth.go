package middleware

import (
	"context"
	"net/http"

	"github.com/quickcart/quickcart/pkg/session"
)

type userKey struct{}

// sessionUserKey is the session entry holding the authenticated username.
const sessionUserKey = "user"

// RequireLogin gates a route behind an authenticated browser session.
// Anonymous requests are redirected to the login form. The authenticated
// username is placed in the request context for handlers (CurrentUser).
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)

		user, ok := sess.GetString(sessionUserKey)
		if !ok || user == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the authenticated username set by RequireLogin,
// or an empty string on ungated routes.
func CurrentUser(ctx context.Context) string {
	if user, ok := ctx.Value(userKey{}).(string); ok {
		return user
	}
	return ""
}

// Login records the authenticated username in the session.
func Login(sess *session.Session, username string) {
	sess.Set(sessionUserKey, username)
}

// Logout clears the session entirely.
func Logout(sess *session.Session) {
	sess.Invalidate()
}
