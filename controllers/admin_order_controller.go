package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solemart/storefront/config"
	"github.com/solemart/storefront/models"
	"github.com/solemart/storefront/utils"
)

// GET /v1/admin/orders
func AdminListOrders(c *gin.Context) {
	query := config.DB.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("DATE(created_at) = ?", date)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Preload("Items").Find(&orders).Error; err != nil {
		utils.LogError("Failed to list orders: %v", err)
		utils.InternalServerError(c, "Failed to list orders", nil)
		return
	}

	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": orders})
}

// Statuses staff may set by hand. Payment state belongs to the webhook
// reconciler and is never touched here; re-entering pending is not
// allowed from any path.
var manualStatuses = map[string]bool{
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// PUT /v1/admin/orders/:id/status
func AdminUpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "status is required", err.Error())
		return
	}
	if !manualStatuses[req.Status] {
		utils.BadRequest(c, "Status cannot be set manually", gin.H{"status": req.Status})
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if err := config.DB.Model(&order).Updates(map[string]interface{}{
		"status":     req.Status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		utils.LogError("Failed to update order %s status: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}

	utils.LogInfo("Order %s status set to %s", order.ID, req.Status)
	utils.Success(c, "Order status updated successfully", gin.H{
		"id":     order.ID,
		"status": req.Status,
	})
}
