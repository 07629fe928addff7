package handlers

import (
	"net/http"
	"time"

	"restaurant-pos-api/billing"
	"restaurant-pos-api/config"
	"restaurant-pos-api/middleware"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
)

// SalesReport aggregates finalized orders for the branch over a date
// range (?from=YYYY-MM-DD&to=YYYY-MM-DD, defaults to the current day)
func SalesReport(c *gin.Context) {
	scope := middleware.GetScope(c)

	from, to, err := reportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var orders []models.Order
	config.DB.Preload("Items").
		Where("owner_id = ? AND branch_id = ? AND status = ?", scope.OwnerID, scope.BranchID, models.OrderPaid).
		Where("order_date >= ? AND order_date < ?", from, to).
		Find(&orders)

	var revenue, tax float64
	byMethod := map[string]float64{}
	dineIn, takeaway := 0, 0
	itemQty := map[string]int{}
	itemRevenue := map[string]float64{}

	for _, o := range orders {
		revenue += o.Total
		tax += o.SGSTAmount + o.CGSTAmount
		byMethod[string(o.PaymentMethod)] += o.Total
		if o.TableID != nil {
			dineIn++
		} else {
			takeaway++
		}
		for _, it := range o.Items {
			itemQty[it.Name] += it.Quantity
			itemRevenue[it.Name] += it.TotalPrice
		}
	}

	// top sellers by quantity
	type topItem struct {
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Revenue  float64 `json:"revenue"`
	}
	top := make([]topItem, 0, len(itemQty))
	for name, qty := range itemQty {
		top = append(top, topItem{Name: name, Quantity: qty, Revenue: billing.RoundMoney(itemRevenue[name])})
	}
	for i := 0; i < len(top); i++ {
		for j := i + 1; j < len(top); j++ {
			if top[j].Quantity > top[i].Quantity {
				top[i], top[j] = top[j], top[i]
			}
		}
	}
	if len(top) > 10 {
		top = top[:10]
	}

	rounded := map[string]float64{}
	for k, v := range byMethod {
		rounded[k] = billing.RoundMoney(v)
	}

	c.JSON(http.StatusOK, gin.H{
		"from":              from.Format("2006-01-02"),
		"to":                to.Add(-24 * time.Hour).Format("2006-01-02"),
		"order_count":       len(orders),
		"dine_in_orders":    dineIn,
		"takeaway_orders":   takeaway,
		"total_revenue":     billing.RoundMoney(revenue),
		"tax_collected":     billing.RoundMoney(tax),
		"by_payment_method": rounded,
		"top_items":         top,
	})
}

func reportRange(c *gin.Context) (time.Time, time.Time, error) {
	today := time.Now().Truncate(24 * time.Hour)
	from, to := today, today

	if q := c.Query("from"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if q := c.Query("to"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	// inclusive end date
	return from, to.Add(24 * time.Hour), nil
}
