package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solemart/storefront/services"
	"github.com/solemart/storefront/utils"
)

// PaymentController exposes the reconciliation pipeline over HTTP. Its
// services are constructed once by the process entry point and
// injected here, so tests can substitute fakes.
type PaymentController struct {
	Intents    *services.PaymentIntentService
	Reconciler *services.ReconcileService
	Notifier   *services.OrderNotifier
	Store      services.OrderStore
}

// NewPaymentController wires the pipeline's HTTP surface.
func NewPaymentController(intents *services.PaymentIntentService, reconciler *services.ReconcileService, notifier *services.OrderNotifier, store services.OrderStore) *PaymentController {
	return &PaymentController{
		Intents:    intents,
		Reconciler: reconciler,
		Notifier:   notifier,
		Store:      store,
	}
}

// POST /v1/create-payment
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	utils.LogInfo("CreatePayment called")

	var req struct {
		OrderID string                   `json:"orderId" binding:"required"`
		Items   []map[string]interface{} `json:"items"`
		Total   float64                  `json:"total"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create-payment request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request. orderId is required",
			"details": err.Error(),
		})
		return
	}

	// Items and total in the body are advisory; the stored order is
	// the authority on what gets charged.
	result, err := pc.Intents.CreateIntent(c.Request.Context(), req.OrderID)
	if err != nil {
		utils.LogError("Failed to create payment intent for order %s: %v", req.OrderID, err)
		status := utils.ErrorStatus(err)
		body := gin.H{"error": err.Error()}
		if appErr := utils.GetAppError(err); appErr != nil {
			body["error"] = appErr.Message
			if appErr.Err != nil {
				body["details"] = appErr.Err.Error()
			}
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"init_point":         result.InitPoint,
		"preference_id":      result.PreferenceID,
		"sandbox_init_point": result.SandboxInitPoint,
	})
}
