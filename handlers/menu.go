package handlers

import (
	"net/http"

	"restaurant-pos-api/config"
	"restaurant-pos-api/middleware"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
)

type VariantRequest struct {
	Name         string  `json:"name" binding:"required"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price" binding:"required,gt=0"`
}

type CreateMenuItemRequest struct {
	Name     string           `json:"name" binding:"required"`
	Category string           `json:"category"`
	Chef     string           `json:"chef"`
	Variants []VariantRequest `json:"variants" binding:"required,min=1,dive"`
}

// AddMenuItem creates a menu item with its variants. At least one
// variant is required for the item to be orderable.
func AddMenuItem(c *gin.Context) {
	scope := middleware.GetScope(c)

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		OwnerID:  scope.OwnerID,
		BranchID: scope.BranchID,
		Name:     req.Name,
		Category: req.Category,
		Chef:     req.Chef,
	}
	for _, v := range req.Variants {
		item.Variants = append(item.Variants, models.MenuItemVariant{
			Name:         v.Name,
			CostPrice:    v.CostPrice,
			SellingPrice: v.SellingPrice,
		})
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// GetMenu returns the branch menu with variants
func GetMenu(c *gin.Context) {
	scope := middleware.GetScope(c)
	var items []models.MenuItem
	query := config.DB.Preload("Variants").
		Where("owner_id = ? AND branch_id = ?", scope.OwnerID, scope.BranchID)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	query.Order("category, name").Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

// UpdateMenuItem updates item fields (not variants)
func UpdateMenuItem(c *gin.Context) {
	scope := middleware.GetScope(c)
	var item models.MenuItem
	if err := config.DB.Where("id = ? AND owner_id = ? AND branch_id = ?", c.Param("itemId"), scope.OwnerID, scope.BranchID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "category": true, "chef": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&item).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item and its variants
func DeleteMenuItem(c *gin.Context) {
	scope := middleware.GetScope(c)
	var item models.MenuItem
	if err := config.DB.Where("id = ? AND owner_id = ? AND branch_id = ?", c.Param("itemId"), scope.OwnerID, scope.BranchID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	config.DB.Where("menu_item_id = ?", item.ID).Delete(&models.MenuItemVariant{})
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// AddVariant adds a variant to an existing menu item
func AddVariant(c *gin.Context) {
	scope := middleware.GetScope(c)
	var item models.MenuItem
	if err := config.DB.Where("id = ? AND owner_id = ? AND branch_id = ?", c.Param("itemId"), scope.OwnerID, scope.BranchID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	variant := models.MenuItemVariant{
		MenuItemID:   item.ID,
		Name:         req.Name,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
	}
	if err := config.DB.Create(&variant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add variant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Variant added", "variant": variant})
}

// UpdateVariant changes a variant's name or prices. Finalized orders
// keep their frozen prices regardless.
func UpdateVariant(c *gin.Context) {
	scope := middleware.GetScope(c)
	var variant models.MenuItemVariant
	err := config.DB.
		Joins("JOIN menu_items ON menu_items.id = menu_item_variants.menu_item_id").
		Where("menu_item_variants.id = ? AND menu_items.owner_id = ? AND menu_items.branch_id = ?",
			c.Param("variantId"), scope.OwnerID, scope.BranchID).
		First(&variant).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "cost_price": true, "selling_price": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&variant).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Variant updated", "variant": variant})
}

// DeleteVariant removes a variant. The last variant of an item cannot
// be removed; delete the item instead.
func DeleteVariant(c *gin.Context) {
	scope := middleware.GetScope(c)
	var variant models.MenuItemVariant
	err := config.DB.
		Joins("JOIN menu_items ON menu_items.id = menu_item_variants.menu_item_id").
		Where("menu_item_variants.id = ? AND menu_items.owner_id = ? AND menu_items.branch_id = ?",
			c.Param("variantId"), scope.OwnerID, scope.BranchID).
		First(&variant).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		return
	}

	var count int64
	config.DB.Model(&models.MenuItemVariant{}).Where("menu_item_id = ?", variant.MenuItemID).Count(&count)
	if count <= 1 {
		c.JSON(http.StatusConflict, gin.H{"error": "An item must keep at least one variant"})
		return
	}
	config.DB.Delete(&variant)
	c.JSON(http.StatusOK, gin.H{"message": "Variant deleted"})
}
