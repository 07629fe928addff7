package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant-pos-api/billing"
	"restaurant-pos-api/config"
	"restaurant-pos-api/middleware"
	"restaurant-pos-api/models"

	"github.com/gin-gonic/gin"
)

type AddLineRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	VariantID  uint `json:"variant_id" binding:"required"`
	Quantity   int  `json:"quantity"`
}

type SetQuantityRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	VariantID  uint `json:"variant_id" binding:"required"`
	Quantity   int  `json:"quantity"`
}

type SetRatesRequest struct {
	SGSTRate float64 `json:"sgst_rate"`
	CGSTRate float64 `json:"cgst_rate"`
}

func tableParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("tableId"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
		return 0, false
	}
	return uint(id), true
}

// draftError maps billing sentinel errors onto HTTP statuses
func draftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, billing.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, billing.ErrStaleDraft):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, billing.ErrNoScope), errors.Is(err, billing.ErrQuantity),
		errors.Is(err, billing.ErrEmptyDraft), errors.Is(err, billing.ErrUnresolvedLine):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetDraft returns the open draft for a table with resolved line
// details. A table without a draft responds 404: it is available.
func GetDraft(c *gin.Context) {
	scope := middleware.GetScope(c)
	tableID, ok := tableParam(c)
	if !ok {
		return
	}

	store := billing.NewDraftStore(config.DB)
	draft, err := store.GetByTable(scope, tableID)
	if err != nil {
		draftError(c, err)
		return
	}
	respondDraft(c, http.StatusOK, "Draft loaded", scope, draft)
}

// AddDraftLine adds (or merges) one line into the table's draft,
// creating the draft on first add
func AddDraftLine(c *gin.Context) {
	scope := middleware.GetScope(c)
	tableID, ok := tableParam(c)
	if !ok {
		return
	}
	var req AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	store := billing.NewDraftStore(config.DB)
	draft, err := store.AddLine(scope, tableID, req.MenuItemID, req.VariantID, req.Quantity)
	if err != nil {
		draftError(c, err)
		return
	}
	respondDraft(c, http.StatusOK, "Line added", scope, draft)
}

// SetDraftQuantity sets a line's quantity; 0 removes the line and an
// emptied draft disappears with the table back to available
func SetDraftQuantity(c *gin.Context) {
	scope := middleware.GetScope(c)
	tableID, ok := tableParam(c)
	if !ok {
		return
	}
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := billing.NewDraftStore(config.DB)
	draft, err := store.SetQuantity(scope, tableID, req.MenuItemID, req.VariantID, req.Quantity)
	if err != nil {
		draftError(c, err)
		return
	}
	if draft == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Draft emptied and removed", "draft": nil})
		return
	}
	respondDraft(c, http.StatusOK, "Quantity updated", scope, draft)
}

// SetDraftRates overrides the draft's tax rates (clamped to [0,100])
func SetDraftRates(c *gin.Context) {
	scope := middleware.GetScope(c)
	tableID, ok := tableParam(c)
	if !ok {
		return
	}
	var req SetRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := billing.NewDraftStore(config.DB)
	draft, err := store.SetRates(scope, tableID, req.SGSTRate, req.CGSTRate)
	if err != nil {
		draftError(c, err)
		return
	}
	respondDraft(c, http.StatusOK, "Tax rates updated", scope, draft)
}

// DiscardDraft throws the draft away and frees the table
func DiscardDraft(c *gin.Context) {
	scope := middleware.GetScope(c)
	tableID, ok := tableParam(c)
	if !ok {
		return
	}
	store := billing.NewDraftStore(config.DB)
	if err := store.Delete(scope, tableID); err != nil {
		draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft discarded"})
}

// respondDraft attaches resolved line details so the client can
// render names and prices without further lookups
func respondDraft(c *gin.Context, status int, message string, scope billing.Scope, draft *models.PendingOrder) {
	lines := billing.LinesOf(draft)
	catalog, err := billing.ResolveCatalog(config.DB, scope, lines)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, gin.H{"message": message, "draft": draft, "lines": catalog.Render(lines)})
}
