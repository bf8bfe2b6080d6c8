package controllers

import (
	"net/http"

	"github.com/quickcart/quickcart/app/services"
	"github.com/quickcart/quickcart/app/views"
	"github.com/quickcart/quickcart/pkg/logger"
	"github.com/quickcart/quickcart/pkg/middleware"
	"github.com/quickcart/quickcart/pkg/session"
)

type DashboardController struct {
	inventory *services.InventoryService
}

func NewDashboardController(inventory *services.InventoryService) *DashboardController {
	return &DashboardController{inventory: inventory}
}

// Home renders the dashboard: product table, catalogue aggregates, and
// today's sales summary.
func (c *DashboardController) Home(w http.ResponseWriter, r *http.Request) {
	data, err := c.inventory.DashboardData()
	if err != nil {
		logger.WithCtx(r.Context()).Error("dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sess := session.FromCtx(r)
	flash, _ := sess.GetFlash("error")
	_ = sess.Save(w)

	page := struct {
		User  string
		Flash interface{}
		Data  services.Dashboard
	}{
		User:  middleware.CurrentUser(r.Context()),
		Flash: flash,
		Data:  data,
	}

	if err := views.Render(w, "index.html", page); err != nil {
		logger.WithCtx(r.Context()).Error("render dashboard", "error", err)
	}
}
