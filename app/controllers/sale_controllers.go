package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quickcart/quickcart/app/services"
	"github.com/quickcart/quickcart/pkg/logger"
)

type SaleController struct {
	inventory *services.InventoryService
}

func NewSaleController(inventory *services.InventoryService) *SaleController {
	return &SaleController{inventory: inventory}
}

// Sell records a sale against the product in the path. The browser is
// redirected to the dashboard whether or not the sale went through; failures
// surface as a flash message rather than an error page.
func (c *SaleController) Sell(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		flashError(w, r, "Unknown product")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	qty, err := strconv.Atoi(r.PostFormValue("sell_quantity"))
	if err != nil || qty <= 0 {
		flashError(w, r, "Sell quantity must be a positive number")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	sale, err := c.inventory.Sell(id, qty)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		flashError(w, r, "Unknown product")
	case errors.Is(err, services.ErrInsufficientStock):
		flashError(w, r, "Not enough stock for that sale")
	case err != nil:
		logger.WithCtx(r.Context()).Error("sell", "product_id", id, "error", err)
		flashError(w, r, "Could not record sale")
	default:
		logger.WithCtx(r.Context()).Info("sale recorded",
			"sale_id", sale.ID, "product_id", id, "qty", qty, "total", sale.Total)
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// DeleteSale reverses a sale and returns to the history page. Deleting an
// id that no longer exists is a silent no-op.
func (c *SaleController) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/sales", http.StatusFound)
		return
	}

	if err := c.inventory.DeleteSale(id); err != nil && !errors.Is(err, services.ErrSaleNotFound) {
		logger.WithCtx(r.Context()).Error("delete sale", "sale_id", id, "error", err)
	} else if err == nil {
		logger.WithCtx(r.Context()).Info("sale deleted", "sale_id", id)
	}

	http.Redirect(w, r, "/sales", http.StatusFound)
}

// ResetToday bulk-deletes today's sales.
func (c *SaleController) ResetToday(w http.ResponseWriter, r *http.Request) {
	removed, err := c.inventory.ResetToday()
	if err != nil {
		logger.WithCtx(r.Context()).Error("reset today", "error", err)
		flashError(w, r, "Could not reset today's sales")
	} else {
		logger.WithCtx(r.Context()).Info("today's sales reset", "removed", removed)
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
