// Package services holds the order/payment reconciliation pipeline: the
// payment intent service, the webhook reconciler, and the notification
// trigger. All collaborators are injected through the interfaces below
// so the pipeline can be exercised against fakes.
package services

import (
	"context"
	"errors"

	"github.com/solemart/storefront/gateway"
	"github.com/solemart/storefront/models"
)

// ErrOrderNotFound is returned by an OrderStore when no order exists
// for the given identifier.
var ErrOrderNotFound = errors.New("order not found")

// OrderStore is the persistence surface the pipeline is allowed to
// touch. The reconciler may only move payment_status, status, and
// updated_at, together, in a single write.
type OrderStore interface {
	// Get loads an order with its line items.
	Get(ctx context.Context, id string) (*models.Order, error)
	// UpdatePaymentState applies a (payment_status, status) pair
	// atomically. Re-applying the same pair is a no-op in effect, and
	// the store suppresses transitions that would leave a terminal
	// state or re-enter pending.
	UpdatePaymentState(ctx context.Context, id, paymentStatus, orderStatus string) error
	// SetPaymentInfo records the payment method and redirect URL
	// handed back by the gateway when an intent is created.
	SetPaymentInfo(ctx context.Context, id, method, paymentURL string) error
}

// PaymentGateway issues the three outbound calls the pipeline needs.
// The concrete implementation lives in the gateway package.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, req *gateway.PreferenceRequest) (*gateway.Preference, error)
	GetPayment(ctx context.Context, id string) (*gateway.Payment, error)
	GetMerchantOrder(ctx context.Context, id string) (*gateway.MerchantOrder, error)
}

// NotificationChannel delivers a formatted message to the fixed
// operator channel and returns a message identifier.
type NotificationChannel interface {
	Send(ctx context.Context, text string) (string, error)
}
