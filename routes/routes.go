package routes

import (
	"restaurant-pos-api/handlers"
	"restaurant-pos-api/middleware"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// State machine info (great for docs/Postman)
		public.GET("/table-lifecycle", handlers.GetTableLifecycle)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Owner (admin) routes ───────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		// Staff management
		admin.POST("/staff", handlers.CreateStaff)
		admin.GET("/staff", handlers.ListStaff)
		admin.PUT("/staff/:id", handlers.UpdateStaff)
		admin.DELETE("/staff/:id", handlers.DeleteStaff)

		// Branch management
		admin.POST("/branches", handlers.CreateBranch)
		admin.GET("/branches", handlers.ListBranches)
		admin.PUT("/branches/:id", handlers.UpdateBranch)
		admin.DELETE("/branches/:id", handlers.DeleteBranch)
		admin.PUT("/active-branch", handlers.SetActiveBranch)

		// Table management
		admin.POST("/tables", handlers.CreateTable)
		admin.GET("/tables", handlers.ListTables)
		admin.DELETE("/tables/:id", handlers.DeleteTable)
	}

	// ── Back office (admin or manager, branch-scoped) ──────────────
	office := r.Group("/api/office")
	office.Use(middleware.AuthRequired(),
		middleware.RoleRequired(models.RoleAdmin, models.RoleManager),
		middleware.BranchRequired())
	{
		// Menu management
		office.POST("/menu", handlers.AddMenuItem)
		office.GET("/menu", handlers.GetMenu)
		office.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		office.DELETE("/menu/:itemId", handlers.DeleteMenuItem)
		office.POST("/menu/:itemId/variants", handlers.AddVariant)
		office.PUT("/menu/variants/:variantId", handlers.UpdateVariant)
		office.DELETE("/menu/variants/:variantId", handlers.DeleteVariant)

		// Inventory
		office.POST("/inventory", handlers.AddInventoryItem)
		office.GET("/inventory", handlers.ListInventory)
		office.PUT("/inventory/:id", handlers.UpdateInventoryItem)
		office.POST("/inventory/:id/adjust", handlers.AdjustStock)
		office.DELETE("/inventory/:id", handlers.DeleteInventoryItem)

		// Procurement
		office.POST("/suppliers", handlers.AddSupplier)
		office.GET("/suppliers", handlers.ListSuppliers)
		office.DELETE("/suppliers/:id", handlers.DeleteSupplier)
		office.POST("/purchases", handlers.CreatePurchaseOrder)
		office.GET("/purchases", handlers.ListPurchaseOrders)
		office.PUT("/purchases/:id/receive", handlers.ReceivePurchaseOrder)

		// Reporting
		office.GET("/reports/sales", handlers.SalesReport)
	}

	// ── Point of sale (any staff, branch-scoped) ───────────────────
	pos := r.Group("/api/pos")
	pos.Use(middleware.AuthRequired(),
		middleware.RoleRequired(models.RoleAdmin, models.RoleManager, models.RoleStaff),
		middleware.BranchRequired())
	{
		pos.GET("/tables", handlers.ListTables)
		pos.GET("/menu", handlers.GetMenu)

		// Draft orders
		pos.GET("/tables/:tableId/draft", handlers.GetDraft)
		pos.POST("/tables/:tableId/draft/lines", handlers.AddDraftLine)
		pos.PUT("/tables/:tableId/draft/lines", handlers.SetDraftQuantity)
		pos.PUT("/tables/:tableId/draft/rates", handlers.SetDraftRates)
		pos.DELETE("/tables/:tableId/draft", handlers.DiscardDraft)

		// Checkout
		pos.POST("/tables/:tableId/checkout", handlers.Checkout)
		pos.POST("/takeaway/checkout", handlers.CheckoutTakeaway)
		pos.GET("/orders", handlers.ListOrders)
		pos.GET("/orders/:id", handlers.GetOrder)
	}
}
