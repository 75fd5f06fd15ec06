package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/solemart/storefront/gateway"
	"github.com/solemart/storefront/utils"
)

// intentExpiry is how long a payment preference stays payable.
const intentExpiry = 30 * time.Minute

// PaymentMethodGateway marks orders paid through the external gateway.
const PaymentMethodGateway = "gateway"

// IntentResult is the outcome of creating a payment preference.
type IntentResult struct {
	PreferenceID     string
	InitPoint        string
	SandboxInitPoint string
}

// PaymentIntentService builds gateway payment preferences from orders.
type PaymentIntentService struct {
	store         OrderStore
	gw            PaymentGateway
	publicBaseURL string
	now           func() time.Time
}

// NewPaymentIntentService wires the intent service. publicBaseURL is
// used to construct the payer back URLs and the webhook notification
// URL, and must not end with a slash.
func NewPaymentIntentService(store OrderStore, gw PaymentGateway, publicBaseURL string) *PaymentIntentService {
	return &PaymentIntentService{
		store:         store,
		gw:            gw,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// CreateIntent loads the order, validates it, and registers a payment
// preference with the gateway. The order identifier travels as the
// preference's external_reference; it is the only linkage the webhook
// reconciler gets back.
func (s *PaymentIntentService) CreateIntent(ctx context.Context, orderID string) (*IntentResult, error) {
	if orderID == "" {
		return nil, utils.ValidationError("orderId is required", nil)
	}

	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, utils.NotFoundError("Order not found", err)
		}
		return nil, utils.PersistenceError("Failed to load order", err)
	}

	if len(order.Items) == 0 {
		return nil, utils.ValidationError("Order has no items", nil)
	}
	if order.Total <= 0 {
		return nil, utils.ValidationError("Order total must be positive", nil)
	}

	items := make([]gateway.PreferenceItem, 0, len(order.Items))
	for _, item := range order.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, utils.ValidationError(
				fmt.Sprintf("Invalid line item for product %s", item.ProductID), nil)
		}
		title := item.Title
		if title == "" {
			title = "Item"
		}
		items = append(items, gateway.PreferenceItem{
			Title:     title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	firstName, lastName := splitFullName(order.CustomerName)
	ref := url.QueryEscape(order.ID)

	req := &gateway.PreferenceRequest{
		Items: items,
		Payer: gateway.PreferencePayer{
			Name:    firstName,
			Surname: lastName,
			Email:   order.CustomerEmail,
			Phone:   order.CustomerPhone,
			Address: shippingLine(order.ShippingLine1, order.ShippingLine2, order.ShippingCity, order.ShippingState, order.PostalCode),
		},
		BackURLs: gateway.BackURLs{
			Success: s.publicBaseURL + "/payment/approved?order_id=" + ref,
			Failure: s.publicBaseURL + "/payment/rejected?order_id=" + ref,
			Pending: s.publicBaseURL + "/payment/pending?order_id=" + ref,
		},
		AutoReturn:        "approved",
		ExternalReference: order.ID,
		NotificationURL:   s.publicBaseURL + "/v1/payment-webhook",
		Expires:           true,
		ExpirationDateTo:  s.now().Add(intentExpiry),
		// Binary mode restricts outcomes to approved/rejected so the
		// payer never lands in an ambiguous pending settlement.
		BinaryMode: true,
	}

	pref, err := s.gw.CreatePreference(ctx, req)
	if err != nil {
		if errors.Is(err, gateway.ErrNotConfigured) {
			return nil, utils.ConfigurationError("Payment gateway is not configured", err)
		}
		return nil, utils.UpstreamError("Failed to create payment preference", err)
	}

	// Best effort: the preference exists either way, and the webhook
	// reconciler is the authority on final state.
	if err := s.store.SetPaymentInfo(ctx, order.ID, PaymentMethodGateway, pref.InitPoint); err != nil {
		utils.LogError("Failed to record payment info for order %s: %v", order.ID, err)
	}

	utils.LogInfo("Created payment preference %s for order %s", pref.ID, order.ID)
	return &IntentResult{
		PreferenceID:     pref.ID,
		InitPoint:        pref.InitPoint,
		SandboxInitPoint: pref.SandboxInitPoint,
	}, nil
}

// splitFullName breaks a single full-name field into first/last,
// falling back to placeholders when parts are absent.
func splitFullName(full string) (string, string) {
	fields := strings.Fields(full)
	switch len(fields) {
	case 0:
		return "Guest", "Customer"
	case 1:
		return fields[0], "Customer"
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

func shippingLine(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
