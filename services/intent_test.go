package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solemart/storefront/gateway"
	"github.com/solemart/storefront/models"
	"github.com/solemart/storefront/utils"
)

func testOrder() *models.Order {
	return &models.Order{
		ID:            "ORDER-9",
		CustomerName:  "Maria Elena Perez",
		CustomerEmail: "maria@example.com",
		CustomerPhone: "+54 11 5555",
		ShippingLine1: "Av. Siempre Viva 742",
		ShippingCity:  "Buenos Aires",
		ShippingState: "BA",
		PostalCode:    "C1000",
		Total:         45.00,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Items: []models.OrderItem{
			{OrderID: "ORDER-9", ProductID: "p1", Title: "Blue Mug", Quantity: 2, UnitPrice: 19.99, Total: 39.98},
			{OrderID: "ORDER-9", ProductID: "p2", Title: "Sticker", Quantity: 1, UnitPrice: 5.02, Total: 5.02},
		},
	}
}

func TestCreateIntentBuildsPreference(t *testing.T) {
	store := newFakeStore(testOrder())
	gw := &fakeGateway{preference: &gateway.Preference{
		ID:               "pref-42",
		InitPoint:        "https://gw/init/pref-42",
		SandboxInitPoint: "https://gw/sandbox/pref-42",
	}}
	svc := NewPaymentIntentService(store, gw, "https://shop.example.com/")
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	result, err := svc.CreateIntent(context.Background(), "ORDER-9")
	require.NoError(t, err)
	assert.Equal(t, "pref-42", result.PreferenceID)
	assert.Equal(t, "https://gw/init/pref-42", result.InitPoint)
	assert.Equal(t, "https://gw/sandbox/pref-42", result.SandboxInitPoint)

	req := gw.lastPreference
	require.NotNil(t, req)
	require.Len(t, req.Items, 2)

	var sum float64
	for _, item := range req.Items {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	assert.InDelta(t, 45.00, sum, 0.001)

	assert.Equal(t, "ORDER-9", req.ExternalReference)
	assert.True(t, req.BinaryMode)
	assert.Equal(t, "approved", req.AutoReturn)
	assert.True(t, req.Expires)
	assert.Equal(t, fixed.Add(30*time.Minute), req.ExpirationDateTo)

	assert.Equal(t, "https://shop.example.com/payment/approved?order_id=ORDER-9", req.BackURLs.Success)
	assert.Equal(t, "https://shop.example.com/payment/rejected?order_id=ORDER-9", req.BackURLs.Failure)
	assert.Equal(t, "https://shop.example.com/payment/pending?order_id=ORDER-9", req.BackURLs.Pending)
	assert.Equal(t, "https://shop.example.com/v1/payment-webhook", req.NotificationURL)

	assert.Equal(t, "Maria", req.Payer.Name)
	assert.Equal(t, "Elena Perez", req.Payer.Surname)
	assert.Equal(t, "maria@example.com", req.Payer.Email)

	// Payment info is recorded on the order once the preference exists.
	stored := store.orders["ORDER-9"]
	assert.Equal(t, PaymentMethodGateway, stored.PaymentMethod)
	assert.Equal(t, "https://gw/init/pref-42", stored.PaymentURL)
}

func TestCreateIntentMissingOrderID(t *testing.T) {
	svc := NewPaymentIntentService(newFakeStore(), &fakeGateway{}, "https://shop.example.com")

	_, err := svc.CreateIntent(context.Background(), "")
	assert.True(t, utils.IsValidationError(err))
}

func TestCreateIntentOrderNotFound(t *testing.T) {
	svc := NewPaymentIntentService(newFakeStore(), &fakeGateway{}, "https://shop.example.com")

	_, err := svc.CreateIntent(context.Background(), "missing")
	assert.True(t, utils.IsNotFoundError(err))
}

func TestCreateIntentRejectsEmptyItems(t *testing.T) {
	order := testOrder()
	order.Items = nil
	svc := NewPaymentIntentService(newFakeStore(order), &fakeGateway{}, "https://shop.example.com")

	_, err := svc.CreateIntent(context.Background(), order.ID)
	assert.True(t, utils.IsValidationError(err))
}

func TestCreateIntentRejectsNonPositiveTotal(t *testing.T) {
	order := testOrder()
	order.Total = 0
	svc := NewPaymentIntentService(newFakeStore(order), &fakeGateway{}, "https://shop.example.com")

	_, err := svc.CreateIntent(context.Background(), order.ID)
	assert.True(t, utils.IsValidationError(err))
}

func TestCreateIntentGatewayNotConfigured(t *testing.T) {
	gw := &fakeGateway{preferenceErr: gateway.ErrNotConfigured}
	svc := NewPaymentIntentService(newFakeStore(testOrder()), gw, "https://shop.example.com")

	_, err := svc.CreateIntent(context.Background(), "ORDER-9")
	assert.True(t, utils.IsConfigurationError(err))
}

func TestCreateIntentGatewayFailure(t *testing.T) {
	gw := &fakeGateway{preferenceErr: errors.New("502 bad gateway")}
	svc := NewPaymentIntentService(newFakeStore(testOrder()), gw, "https://shop.example.com")

	_, err := svc.CreateIntent(context.Background(), "ORDER-9")
	assert.True(t, utils.IsUpstreamError(err))
}

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		full  string
		first string
		last  string
	}{
		{"", "Guest", "Customer"},
		{"Cher", "Cher", "Customer"},
		{"Ana Gomez", "Ana", "Gomez"},
		{"Juan Carlos de la Vega", "Juan", "Carlos de la Vega"},
	}
	for _, tt := range tests {
		first, last := splitFullName(tt.full)
		assert.Equal(t, tt.first, first, tt.full)
		assert.Equal(t, tt.last, last, tt.full)
	}
}
