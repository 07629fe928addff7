package handlers

import (
	"net/http"

	"restaurant-pos-api/billing"

	"github.com/gin-gonic/gin"
)

// GetTableLifecycle returns the table state machine for informational
// purposes (docs/Postman)
func GetTableLifecycle(c *gin.Context) {
	transitions := billing.TableLifecycle()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "reason": t.Reason})
	}
	c.JSON(http.StatusOK, gin.H{
		"table_lifecycle": info,
		"description":     "Dining Table Lifecycle State Machine",
	})
}
