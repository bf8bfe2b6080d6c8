package routes

import (
	"gorm.io/gorm"

	"github.com/quickcart/quickcart/app/controllers"
	"github.com/quickcart/quickcart/app/services"
	"github.com/quickcart/quickcart/pkg/middleware"
	"github.com/quickcart/quickcart/pkg/router"
)

// RegisterWeb wires the full HTTP surface. Every route except the login
// pair is session-gated, the mutating routes included.
func RegisterWeb(r *router.Router, db *gorm.DB) {
	inventory := services.NewInventoryService(db)
	reports := services.NewReportService(db)

	auth := controllers.NewAuthController()
	dashboard := controllers.NewDashboardController(inventory)
	products := controllers.NewProductController(inventory)
	sales := controllers.NewSaleController(inventory)
	reporting := controllers.NewReportController(reports)

	r.Get("/login", "auth.form", auth.ShowLogin)
	r.Post("/login", "auth.login", auth.Login)
	r.Get("/logout", "auth.logout", auth.Logout)

	protected := r.Group("", middleware.RequireLogin)
	protected.Get("/", "dashboard", dashboard.Home)
	protected.Post("/add", "products.add", products.Add)
	protected.Post("/sell/{id}", "sales.sell", sales.Sell)
	protected.Get("/sales", "sales.history", reporting.Sales)
	protected.Post("/delete_sale/{id}", "sales.delete", sales.DeleteSale)
	protected.Post("/reset_today", "sales.reset_today", sales.ResetToday)
	protected.Get("/export_sales", "sales.export", reporting.ExportCSV)
	protected.Get("/invoice/{sale_id}", "sales.invoice", reporting.Invoice)
}
