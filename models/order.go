package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusFailed     = "failed"
)

// Payment status constants
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Order is the persistent purchase record. Its ID doubles as the
// external_reference sent to the payment gateway, which is the only
// linkage key between gateway resources and the store.
type Order struct {
	ID            string      `gorm:"primaryKey;size:64" json:"id"`
	UserID        *string     `gorm:"size:64;index" json:"user_id,omitempty"`
	User          *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	ShippingLine1 string      `json:"shipping_line1"`
	ShippingLine2 string      `json:"shipping_line2,omitempty"`
	ShippingCity  string      `json:"shipping_city"`
	ShippingState string      `json:"shipping_state"`
	PostalCode    string      `json:"postal_code"`
	Total         float64     `json:"total"`
	Status        string      `gorm:"size:32;default:'pending'" json:"status"`
	PaymentStatus string      `gorm:"size:32;default:'pending'" json:"payment_status"`
	PaymentMethod string      `gorm:"size:32" json:"payment_method"`
	PaymentURL    string      `json:"payment_url,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// IsGuest reports whether the order was placed without an account.
func (o *Order) IsGuest() bool {
	return o.UserID == nil || *o.UserID == ""
}

// OrderItem snapshots a product at purchase time. Title and unit price
// are copied from the product so later catalog edits do not alter the
// order record.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"size:64;index" json:"order_id"`
	ProductID string  `gorm:"size:64" json:"product_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}
