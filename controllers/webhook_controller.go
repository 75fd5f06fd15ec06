package controllers

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/solemart/storefront/utils"
)

// POST /v1/payment-webhook
// The gateway delivers callbacks at least once, possibly duplicated and
// out of order. 4xx tells it to stop redelivering a hopeless event; 5xx
// leaves the event unacknowledged so it retries.
func (pc *PaymentController) PaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read request body"})
		return
	}

	outcome, err := pc.Reconciler.HandleEvent(c.Request.Context(), body)
	if err != nil {
		appErr := utils.GetAppError(err)
		if appErr != nil && (appErr.Kind == utils.KindValidation || appErr.Kind == utils.KindNotFound) {
			// The webhook caller gets 400 for unresolvable events;
			// retrying them cannot succeed.
			utils.LogError("Rejected webhook event: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}

		utils.LogError("Webhook reconciliation failed: %v", err)
		message := err.Error()
		if appErr != nil {
			message = appErr.Message
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": message,
			"stack": string(debug.Stack()),
		})
		return
	}

	if !outcome.Handled {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": outcome.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
