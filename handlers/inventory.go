package handlers

import (
	"net/http"

	"restaurant-pos-api/config"
	"restaurant-pos-api/middleware"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
)

type CreateInventoryItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	ReorderLevel float64 `json:"reorder_level"`
}

// AddInventoryItem creates a stock item for the branch
func AddInventoryItem(c *gin.Context) {
	scope := middleware.GetScope(c)
	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.InventoryItem{
		OwnerID:      scope.OwnerID,
		BranchID:     scope.BranchID,
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
	}
	if item.Unit == "" {
		item.Unit = "kg"
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add inventory item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Inventory item added", "item": item})
}

// ListInventory returns branch stock; ?low=true filters items at or
// below their reorder level
func ListInventory(c *gin.Context) {
	scope := middleware.GetScope(c)
	query := config.DB.Where("owner_id = ? AND branch_id = ?", scope.OwnerID, scope.BranchID)
	if c.Query("low") == "true" {
		query = query.Where("quantity <= reorder_level")
	}
	var items []models.InventoryItem
	query.Order("name").Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "inventory": items})
}

// UpdateInventoryItem updates item details
func UpdateInventoryItem(c *gin.Context) {
	scope := middleware.GetScope(c)
	var item models.InventoryItem
	if err := config.DB.Where("id = ? AND owner_id = ? AND branch_id = ?", c.Param("id"), scope.OwnerID, scope.BranchID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "unit": true, "quantity": true, "reorder_level": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&item).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item updated", "item": item})
}

type AdjustStockRequest struct {
	Delta  float64 `json:"delta" binding:"required"`
	Reason string  `json:"reason"`
}

// AdjustStock applies a manual correction (wastage, recount) to a
// stock quantity; the result is floored at zero
func AdjustStock(c *gin.Context) {
	scope := middleware.GetScope(c)
	var item models.InventoryItem
	if err := config.DB.Where("id = ? AND owner_id = ? AND branch_id = ?", c.Param("id"), scope.OwnerID, scope.BranchID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newQty := item.Quantity + req.Delta
	if newQty < 0 {
		newQty = 0
	}
	config.DB.Model(&item).Update("quantity", newQty)
	c.JSON(http.StatusOK, gin.H{"message": "Stock adjusted", "item": item, "quantity": newQty})
}

// DeleteInventoryItem removes a stock item
func DeleteInventoryItem(c *gin.Context) {
	scope := middleware.GetScope(c)
	var item models.InventoryItem
	if err := config.DB.Where("id = ? AND owner_id = ? AND branch_id = ?", c.Param("id"), scope.OwnerID, scope.BranchID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted"})
}
