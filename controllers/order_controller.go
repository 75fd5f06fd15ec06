package controllers

import (
	"fmt"
	"math"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/solemart/storefront/config"
	"github.com/solemart/storefront/models"
	"github.com/solemart/storefront/utils"
	"gorm.io/gorm"
)

type orderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	Items    []orderItemRequest `json:"items" binding:"required,min=1"`
	Customer struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customer"`
	Shipping struct {
		Line1      string `json:"line1" binding:"required"`
		Line2      string `json:"line2"`
		City       string `json:"city" binding:"required"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code" binding:"required"`
	} `json:"shipping"`
}

// POST /v1/orders
// Registered customers send a bearer token; guests supply contact
// details inline. Item prices are snapshotted from the catalog and
// stock is reserved in the same transaction.
func CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid order data", err.Error())
		return
	}

	order := models.Order{
		ID:            uuid.New().String(),
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		CustomerPhone: req.Customer.Phone,
		ShippingLine1: req.Shipping.Line1,
		ShippingLine2: req.Shipping.Line2,
		ShippingCity:  req.Shipping.City,
		ShippingState: req.Shipping.State,
		PostalCode:    req.Shipping.PostalCode,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	if userVal, exists := c.Get("user"); exists {
		if user, ok := userVal.(models.User); ok {
			order.UserID = &user.ID
			if order.CustomerName == "" {
				order.CustomerName = user.Name
			}
			if order.CustomerEmail == "" {
				order.CustomerEmail = user.Email
			}
			if order.CustomerPhone == "" {
				order.CustomerPhone = user.Phone
			}
		}
	}
	if order.CustomerEmail == "" {
		utils.BadRequest(c, "Customer email is required", nil)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, line := range req.Items {
			var product models.Product
			if err := tx.Where("id = ? AND is_active = ?", line.ProductID, true).First(&product).Error; err != nil {
				return fmt.Errorf("product %s is not available", line.ProductID)
			}
			if product.Stock < line.Quantity {
				return fmt.Errorf("insufficient stock for %s", product.Name)
			}
			if err := tx.Model(&product).Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				return err
			}

			lineTotal := round2(product.Price * float64(line.Quantity))
			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Title:     product.Name,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				Total:     lineTotal,
			})
			total += lineTotal
		}
		order.Total = round2(total)
		return tx.Create(&order).Error
	})
	if err != nil {
		utils.LogError("Failed to create order: %v", err)
		utils.BadRequest(c, "Failed to create order", err.Error())
		return
	}

	utils.LogInfo("Created order %s with %d items, total %.2f", order.ID, len(order.Items), order.Total)
	utils.Created(c, "Order created successfully", gin.H{"order": order})
}

// GET /v1/orders/:id
// Guest orders are addressable by their opaque id; orders that belong
// to an account are only visible to that account.
func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items").Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if !order.IsGuest() {
		userVal, exists := c.Get("user")
		user, ok := models.User{}, false
		if exists {
			user, ok = userVal.(models.User)
		}
		if !ok || (user.ID != *order.UserID && !user.IsAdmin) {
			utils.NotFound(c, "Order not found")
			return
		}
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": order})
}

// GET /v1/user/orders
func ListMyOrders(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	query := config.DB.Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Preload("Items").Find(&orders).Error; err != nil {
		utils.LogError("Failed to list orders for user %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list orders", nil)
		return
	}

	summaries := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, gin.H{
			"id":             o.ID,
			"date":           o.CreatedAt.Format("2006-01-02 15:04:05"),
			"status":         o.Status,
			"payment_status": o.PaymentStatus,
			"total":          o.Total,
			"items":          len(o.Items),
		})
	}
	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": summaries})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
