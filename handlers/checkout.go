package handlers

import (
	"net/http"

	"restaurant-pos-api/billing"
	"restaurant-pos-api/config"
	"restaurant-pos-api/middleware"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
)

type CheckoutRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"omitempty,oneof=CASH CARD UPI"`
}

type TakeawayLineRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	VariantID  uint `json:"variant_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type TakeawayCheckoutRequest struct {
	PaymentMethod models.PaymentMethod  `json:"payment_method" binding:"omitempty,oneof=CASH CARD UPI"`
	Items         []TakeawayLineRequest `json:"items" binding:"required,min=1,dive"`
}

// Checkout finalizes the draft on a table into an immutable paid
// order and frees the table
func Checkout(c *gin.Context) {
	scope := middleware.GetScope(c)
	tableID, ok := tableParam(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	finalizer := billing.NewFinalizer(config.DB)
	order, err := finalizer.Finalize(scope, tableID, req.PaymentMethod)
	if err != nil {
		draftError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order finalized", "order": order, "receipt": receiptFor(order)})
}

// CheckoutTakeaway finalizes an ad-hoc takeaway order with no table
func CheckoutTakeaway(c *gin.Context) {
	scope := middleware.GetScope(c)
	var req TakeawayCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]billing.Line, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, billing.Line{MenuItemID: it.MenuItemID, VariantID: it.VariantID, Quantity: it.Quantity})
	}

	var branch models.Branch
	if err := config.DB.Where("id = ? AND owner_id = ?", scope.BranchID, scope.OwnerID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	finalizer := billing.NewFinalizer(config.DB)
	order, err := finalizer.FinalizeTakeaway(scope, lines, req.PaymentMethod, branch.SGSTRate, branch.CGSTRate)
	if err != nil {
		draftError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Takeaway order finalized", "order": order, "receipt": receiptFor(order)})
}

// ListOrders returns finalized orders for the caller's branch with
// optional filters
func ListOrders(c *gin.Context) {
	scope := middleware.GetScope(c)
	var orders []models.Order
	query := config.DB.Preload("Items").
		Where("owner_id = ? AND branch_id = ?", scope.OwnerID, scope.BranchID)

	if method := c.Query("payment_method"); method != "" {
		query = query.Where("payment_method = ?", method)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("order_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("order_date <= ?", to)
	}
	query.Order("order_date desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns one finalized order with its frozen lines
func GetOrder(c *gin.Context) {
	scope := middleware.GetScope(c)
	var order models.Order
	err := config.DB.Preload("Items").
		Where("id = ? AND owner_id = ? AND branch_id = ?", c.Param("id"), scope.OwnerID, scope.BranchID).
		First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "receipt": receiptFor(&order)})
}

// receiptFor renders the display view of an order: the one place
// money is rounded to two decimals
func receiptFor(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, gin.H{
			"name":        it.Name,
			"quantity":    it.Quantity,
			"unit_price":  billing.RoundMoney(it.UnitPrice),
			"total_price": billing.RoundMoney(it.TotalPrice),
		})
	}
	return gin.H{
		"order_number":   order.OrderNumber,
		"order_date":     order.OrderDate,
		"items":          items,
		"subtotal":       billing.RoundMoney(order.Subtotal),
		"sgst_rate":      order.SGSTRate,
		"cgst_rate":      order.CGSTRate,
		"sgst_amount":    billing.RoundMoney(order.SGSTAmount),
		"cgst_amount":    billing.RoundMoney(order.CGSTAmount),
		"total":          billing.RoundMoney(order.Total),
		"payment_method": order.PaymentMethod,
	}
}
