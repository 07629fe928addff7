package handlers

import (
	"net/http"
	"time"

	"restaurant-pos-api/config"
	"restaurant-pos-api/middleware"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Suppliers ───────────────────────────────────────────────────────────────

type SupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// AddSupplier registers a supplier for the branch
func AddSupplier(c *gin.Context) {
	scope := middleware.GetScope(c)
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	supplier := models.Supplier{
		OwnerID:  scope.OwnerID,
		BranchID: scope.BranchID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	}
	if err := config.DB.Create(&supplier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add supplier"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Supplier added", "supplier": supplier})
}

// ListSuppliers returns the branch's suppliers
func ListSuppliers(c *gin.Context) {
	scope := middleware.GetScope(c)
	var suppliers []models.Supplier
	config.DB.Where("owner_id = ? AND branch_id = ?", scope.OwnerID, scope.BranchID).
		Order("name").Find(&suppliers)
	c.JSON(http.StatusOK, gin.H{"count": len(suppliers), "suppliers": suppliers})
}

// DeleteSupplier removes a supplier
func DeleteSupplier(c *gin.Context) {
	scope := middleware.GetScope(c)
	var supplier models.Supplier
	if err := config.DB.Where("id = ? AND owner_id = ? AND branch_id = ?", c.Param("id"), scope.OwnerID, scope.BranchID).
		First(&supplier).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}
	config.DB.Delete(&supplier)
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
}

// ── Purchase orders ─────────────────────────────────────────────────────────

type PurchaseLineRequest struct {
	InventoryItemID uint    `json:"inventory_item_id" binding:"required"`
	Quantity        float64 `json:"quantity" binding:"required,gt=0"`
	UnitCost        float64 `json:"unit_cost" binding:"required,gt=0"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID uint                  `json:"supplier_id" binding:"required"`
	Items      []PurchaseLineRequest `json:"items" binding:"required,min=1,dive"`
}

// CreatePurchaseOrder opens a procurement order against a supplier
func CreatePurchaseOrder(c *gin.Context) {
	scope := middleware.GetScope(c)
	var req CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var supplier models.Supplier
	if err := config.DB.Where("id = ? AND owner_id = ? AND branch_id = ?", req.SupplierID, scope.OwnerID, scope.BranchID).
		First(&supplier).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	po := models.PurchaseOrder{
		OwnerID:    scope.OwnerID,
		BranchID:   scope.BranchID,
		SupplierID: supplier.ID,
		Status:     models.PurchaseOpen,
	}
	for _, it := range req.Items {
		po.Items = append(po.Items, models.PurchaseOrderItem{
			InventoryItemID: it.InventoryItemID,
			Quantity:        it.Quantity,
			UnitCost:        it.UnitCost,
		})
		po.Total += it.Quantity * it.UnitCost
	}
	if err := config.DB.Create(&po).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase order"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Purchase order created", "purchase_order": po})
}

// ListPurchaseOrders returns procurement orders with optional status filter
func ListPurchaseOrders(c *gin.Context) {
	scope := middleware.GetScope(c)
	query := config.DB.Preload("Items").Preload("Supplier").
		Where("owner_id = ? AND branch_id = ?", scope.OwnerID, scope.BranchID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.PurchaseOrder
	query.Order("created_at desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "purchase_orders": orders})
}

// ReceivePurchaseOrder marks an open purchase order received and bumps
// the inventory quantities of every line in one transaction
func ReceivePurchaseOrder(c *gin.Context) {
	scope := middleware.GetScope(c)
	var po models.PurchaseOrder
	if err := config.DB.Preload("Items").
		Where("id = ? AND owner_id = ? AND branch_id = ?", c.Param("id"), scope.OwnerID, scope.BranchID).
		First(&po).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		return
	}
	if po.Status != models.PurchaseOpen {
		c.JSON(http.StatusConflict, gin.H{"error": "Purchase order already received"})
		return
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, it := range po.Items {
			res := tx.Model(&models.InventoryItem{}).
				Where("id = ? AND owner_id = ? AND branch_id = ?", it.InventoryItemID, scope.OwnerID, scope.BranchID).
				Update("quantity", gorm.Expr("quantity + ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
		}
		return tx.Model(&po).Updates(map[string]interface{}{
			"status":      models.PurchaseReceived,
			"received_at": now,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to receive purchase order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purchase order received", "purchase_order_id": po.ID})
}
