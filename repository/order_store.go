// Package repository implements the pipeline's persistence interfaces
// over GORM.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/solemart/storefront/models"
	"github.com/solemart/storefront/services"
	"gorm.io/gorm"
)

// OrderStore is the GORM-backed order persistence used by the
// reconciliation pipeline.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore wraps a database handle.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Get loads an order with its line items.
func (s *OrderStore) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdatePaymentState applies the mapped (payment_status, status) pair
// in one atomic write. The WHERE clause keeps the state machine
// forward-only: a transition is applied while the order still sits in
// pending, or when it re-applies the exact pair already recorded
// (replayed deliveries). Anything else is suppressed as a no-op, which
// is what makes at-least-once webhook delivery safe.
func (s *OrderStore) UpdatePaymentState(ctx context.Context, id, paymentStatus, orderStatus string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Where("status = ? OR (payment_status = ? AND status = ?)",
			models.OrderStatusPending, paymentStatus, orderStatus).
		Updates(map[string]interface{}{
			"payment_status": paymentStatus,
			"status":         orderStatus,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return services.ErrOrderNotFound
		}
		// Terminal state reached by an earlier delivery; nothing to do.
	}
	return nil
}

// SetPaymentInfo records the payment method and redirect URL after an
// intent is created.
func (s *OrderStore) SetPaymentInfo(ctx context.Context, id, method, paymentURL string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_method": method,
			"payment_url":    paymentURL,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrOrderNotFound
	}
	return nil
}
