package controllers

import (
	"net/http"

	"github.com/quickcart/quickcart/app/services"
	"github.com/quickcart/quickcart/app/views"
	"github.com/quickcart/quickcart/pkg/logger"
	"github.com/quickcart/quickcart/pkg/middleware"
	"github.com/quickcart/quickcart/pkg/session"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// ShowLogin renders the login form.
func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	flash, _ := sess.GetFlash("error")
	_ = sess.Save(w)

	data := struct{ Error interface{} }{Error: flash}
	if err := views.Render(w, "login.html", data); err != nil {
		logger.WithCtx(r.Context()).Error("render login", "error", err)
	}
}

// Login authenticates the posted credentials. Success marks the session and
// redirects to the dashboard; failure answers with plain text.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if !c.service.Attempt(username, password) {
		logger.WithCtx(r.Context()).Warn("login failed", "username", username)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Invalid Credentials")) //nolint:errcheck
		return
	}

	sess := session.FromCtx(r)
	middleware.Login(sess, username)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("save session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.WithCtx(r.Context()).Info("login", "username", username)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session and returns to the login form.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	middleware.Logout(sess)
	_ = sess.Save(w)

	http.Redirect(w, r, "/login", http.StatusFound)
}
