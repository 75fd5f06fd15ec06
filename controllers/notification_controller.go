package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solemart/storefront/models"
	"github.com/solemart/storefront/utils"
)

// POST /v1/order-notifications
// Dispatches the operator summary for one order. Callers that only
// know the order id may send a bare record; the items are reloaded
// from the store so per-item prices appear in the summary.
func (pc *PaymentController) OrderNotifications(c *gin.Context) {
	var req struct {
		Record models.Order `json:"record"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
			"context": "order-notifications",
		})
		return
	}
	if req.Record.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "record.id is required",
			"context": "order-notifications",
		})
		return
	}

	order := req.Record
	if len(order.Items) == 0 {
		if fresh, err := pc.Store.Get(c.Request.Context(), order.ID); err == nil {
			order = *fresh
		}
	}

	result, err := pc.Notifier.Notify(c.Request.Context(), &order)
	if err != nil {
		utils.LogError("Failed to dispatch notification for order %s: %v", order.ID, err)
		message := err.Error()
		if appErr := utils.GetAppError(err); appErr != nil {
			message = appErr.Message
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   message,
			"context": "order-notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": result.MessageID,
		"timestamp": result.Timestamp.UTC().Format(time.RFC3339),
	})
}
