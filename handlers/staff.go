package handlers

import (
	"net/http"

	"restaurant-pos-api/config"
	"restaurant-pos-api/middleware"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type CreateStaffRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
	BranchID uint            `json:"branch_id" binding:"required"`
	Phone    string          `json:"phone"`
}

// CreateStaff lets the owner add a manager or staff account bound to
// one of their branches
func CreateStaff(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != models.RoleManager && req.Role != models.RoleStaff {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be: manager or staff"})
		return
	}

	var branch models.Branch
	if err := config.DB.Where("id = ? AND owner_id = ?", req.BranchID, ownerID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
		OwnerID:      ownerID,
		BranchID:     req.BranchID,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff account"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Staff account created", "user": user})
}

// ListStaff returns the owner's staff, optionally filtered by role or branch
func ListStaff(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	query := config.DB.Where("owner_id = ? AND id <> ?", ownerID, ownerID)
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if branchID := c.Query("branch_id"); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}
	var users []models.User
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "staff": users})
}

// UpdateStaff changes a staff member's role, branch or contact details
func UpdateStaff(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var user models.User
	if err := config.DB.Where("id = ? AND owner_id = ? AND id <> ?", c.Param("id"), ownerID, ownerID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{"name": true, "phone": true, "role": true, "branch_id": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if role, ok := update["role"].(string); ok && role != string(models.RoleManager) && role != string(models.RoleStaff) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be: manager or staff"})
		return
	}
	config.DB.Model(&user).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Staff member updated", "user": user})
}

// DeleteStaff removes a staff account
func DeleteStaff(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.Where("id = ? AND owner_id = ? AND id <> ?", c.Param("id"), ownerID, ownerID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}
	config.DB.Delete(&user)
	c.JSON(http.StatusOK, gin.H{"message": "Staff account deleted"})
}
