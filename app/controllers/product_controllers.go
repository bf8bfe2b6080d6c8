package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quickcart/quickcart/app/services"
	"github.com/quickcart/quickcart/pkg/logger"
	"github.com/quickcart/quickcart/pkg/session"
)

type ProductController struct {
	inventory *services.InventoryService
}

func NewProductController(inventory *services.InventoryService) *ProductController {
	return &ProductController{inventory: inventory}
}

// Add creates a product from the dashboard form. Rejected input flashes the
// validation message instead of surfacing a storage fault.
func (c *ProductController) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := services.AddProductInput{
		Name:     r.PostFormValue("name"),
		Price:    r.PostFormValue("price"),
		Quantity: r.PostFormValue("quantity"),
	}

	product, err := c.inventory.AddProduct(input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			flashError(w, r, verr.Error())
		} else {
			logger.WithCtx(r.Context()).Error("add product", "error", err)
			flashError(w, r, "Could not add product")
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	logger.WithCtx(r.Context()).Info("product added",
		"product_id", product.ID, "name", product.Name, "quantity", product.Quantity)
	http.Redirect(w, r, "/", http.StatusFound)
}

// flashError stores a one-shot error message for the next dashboard render.
func flashError(w http.ResponseWriter, r *http.Request, msg string) {
	sess := session.FromCtx(r)
	sess.Flash("error", msg)
	_ = sess.Save(w)
}

// parseID parses a positive decimal path parameter.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}
