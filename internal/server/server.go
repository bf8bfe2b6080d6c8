// Package server owns the HTTP lifecycle: handler assembly, listen, and
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/quickcart/quickcart/app/models"
	"github.com/quickcart/quickcart/app/routes"
	"github.com/quickcart/quickcart/config"
	"github.com/quickcart/quickcart/pkg/database"
	"github.com/quickcart/quickcart/pkg/logger"
	"github.com/quickcart/quickcart/pkg/metrics"
	"github.com/quickcart/quickcart/pkg/middleware"
	"github.com/quickcart/quickcart/pkg/reqid"
	"github.com/quickcart/quickcart/pkg/router"
	"github.com/quickcart/quickcart/pkg/session"
)

// Handler assembles the full middleware stack and route table around db.
// Exposed so tests can drive the real surface with httptest.
func Handler(db *gorm.DB, store session.Store) http.Handler {
	r := router.New()

	opts := session.DefaultOptions()
	opts.CookieName = config.SessionCookie()

	// Metrics first for accurate total latency, recovery before anything
	// that can panic, request ID before logging.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(store, opts))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Scrape endpoint stays outside the session gate.
	r.Handle("/metrics", metrics.Handler())

	routes.RegisterWeb(r, db)

	return r.Handler()
}

// Start connects the database, migrates the schema, and serves until
// SIGINT/SIGTERM, then drains in-flight requests.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if err := database.DB.AutoMigrate(&models.Product{}, &models.Sale{}); err != nil {
		return err
	}

	handler := Handler(database.DB, session.NewStoreFromConfig())

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("quickcart listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
