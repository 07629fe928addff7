package handlers

import (
	"net/http"

	"restaurant-pos-api/billing"
	"restaurant-pos-api/config"
	"restaurant-pos-api/middleware"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
)

// ── Branch management ───────────────────────────────────────────────────────

type CreateBranchRequest struct {
	Name     string  `json:"name" binding:"required"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	GSTIN    string  `json:"gstin"`
	SGSTRate float64 `json:"sgst_rate"`
	CGSTRate float64 `json:"cgst_rate"`
}

// CreateBranch adds a new restaurant location for the owner
func CreateBranch(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	branch := models.Branch{
		OwnerID:  ownerID,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		GSTIN:    req.GSTIN,
		SGSTRate: billing.ClampRate(req.SGSTRate),
		CGSTRate: billing.ClampRate(req.CGSTRate),
	}
	if branch.SGSTRate == 0 && branch.CGSTRate == 0 {
		branch.SGSTRate = config.DefaultSGSTRate
		branch.CGSTRate = config.DefaultCGSTRate
	}
	if err := config.DB.Create(&branch).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Branch created", "branch": branch})
}

// ListBranches returns all branches of the owner
func ListBranches(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var branches []models.Branch
	config.DB.Where("owner_id = ?", ownerID).Find(&branches)
	c.JSON(http.StatusOK, gin.H{"count": len(branches), "branches": branches})
}

// UpdateBranch updates branch details including default tax rates
func UpdateBranch(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var branch models.Branch
	if err := config.DB.Where("id = ? AND owner_id = ?", c.Param("id"), ownerID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "address": true, "phone": true, "gstin": true, "sgst_rate": true, "cgst_rate": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if rate, ok := update["sgst_rate"].(float64); ok {
		update["sgst_rate"] = billing.ClampRate(rate)
	}
	if rate, ok := update["cgst_rate"].(float64); ok {
		update["cgst_rate"] = billing.ClampRate(rate)
	}
	config.DB.Model(&branch).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Branch updated", "branch": branch})
}

// DeleteBranch removes a branch
func DeleteBranch(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var branch models.Branch
	if err := config.DB.Where("id = ? AND owner_id = ?", c.Param("id"), ownerID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}
	config.DB.Delete(&branch)
	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted"})
}

type SetActiveBranchRequest struct {
	BranchID uint `json:"branch_id" binding:"required"`
}

// SetActiveBranch binds the owner's session to one of their branches
// and returns a fresh token carrying that scope. Staff accounts are
// bound at creation; owners switch branches explicitly.
func SetActiveBranch(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req SetActiveBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var branch models.Branch
	if err := config.DB.Where("id = ? AND owner_id = ?", req.BranchID, ownerID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, ownerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	config.DB.Model(&user).Update("branch_id", branch.ID)
	user.BranchID = branch.ID

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Active branch set", "token": token, "branch": branch})
}

// ── Table management ────────────────────────────────────────────────────────

type CreateTableRequest struct {
	BranchID uint `json:"branch_id" binding:"required"`
	Number   int  `json:"number" binding:"required,min=1"`
	Seats    int  `json:"seats"`
}

// CreateTable adds a dining table to a branch
func CreateTable(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var branch models.Branch
	if err := config.DB.Where("id = ? AND owner_id = ?", req.BranchID, ownerID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	var dup models.DiningTable
	if result := config.DB.Where("branch_id = ? AND number = ?", req.BranchID, req.Number).First(&dup); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Table number already exists in this branch"})
		return
	}

	table := models.DiningTable{
		OwnerID:  ownerID,
		BranchID: req.BranchID,
		Number:   req.Number,
		Seats:    req.Seats,
		Status:   models.TableAvailable,
	}
	if table.Seats == 0 {
		table.Seats = 4
	}
	if err := config.DB.Create(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Table created", "table": table})
}

// ListTables returns tables for the caller's branch with live status.
// Staff see their own branch; the owner passes ?branch_id=.
func ListTables(c *gin.Context) {
	scope := middleware.GetScope(c)
	branchID := scope.BranchID
	if middleware.GetRole(c) == models.RoleAdmin {
		if q := c.Query("branch_id"); q != "" {
			var branch models.Branch
			if err := config.DB.Where("id = ? AND owner_id = ?", q, middleware.GetUserID(c)).First(&branch).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
				return
			}
			branchID = branch.ID
		}
	}
	if branchID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id required"})
		return
	}

	var tables []models.DiningTable
	query := config.DB.Where("branch_id = ?", branchID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("number").Find(&tables)

	// floor summary
	summary := map[string]int{}
	for _, t := range tables {
		summary[string(t.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{"count": len(tables), "summary": summary, "tables": tables})
}

// DeleteTable removes a table; occupied tables cannot be removed
func DeleteTable(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var table models.DiningTable
	if err := config.DB.Where("id = ? AND owner_id = ?", c.Param("id"), ownerID).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	if table.Status != models.TableAvailable {
		c.JSON(http.StatusConflict, gin.H{"error": "Table has an open order and cannot be deleted"})
		return
	}
	config.DB.Delete(&table)
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}
