package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"path"
	"strings"

	"github.com/solemart/storefront/models"
	"github.com/solemart/storefront/utils"
)

// Gateway status values the reconciler maps onto the order state
// machine. Anything else resolves to a failed payment.
const (
	GatewayStatusApproved = "approved"
	GatewayStatusPending  = "pending"
)

// WebhookOutcome summarizes one processed gateway callback.
type WebhookOutcome struct {
	// Handled is false for event kinds the reconciler acknowledges
	// but ignores, so the gateway stops redelivering them.
	Handled       bool
	Message       string
	OrderID       string
	PaymentStatus string
	OrderStatus   string
	Notified      bool
}

// ReconcileService maps asynchronous gateway callbacks onto the order
// state machine. It keeps no memory of processed events; every delivery
// re-resolves status from the gateway and applies a deterministic,
// idempotent overwrite, so duplicated and out-of-order deliveries
// converge to the same final state.
type ReconcileService struct {
	store    OrderStore
	gw       PaymentGateway
	notifier *OrderNotifier
}

// NewReconcileService wires the reconciler with its injected
// collaborators.
func NewReconcileService(store OrderStore, gw PaymentGateway, notifier *OrderNotifier) *ReconcileService {
	return &ReconcileService{store: store, gw: gw, notifier: notifier}
}

// flexID accepts the gateway's resource id whether it arrives as a
// JSON number or a string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// webhookEvent is the gateway's native callback shape. Older topics use
// `topic` + `resource`, newer ones `type` + `data.id`.
type webhookEvent struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		ID flexID `json:"id"`
	} `json:"data"`
	Resource string `json:"resource"`
}

// eventResolver is the tagged-union dispatch over webhook kinds. Each
// variant resolves its gateway resource to the order identifier and a
// canonical gateway status.
type eventResolver interface {
	resolve(ctx context.Context, gw PaymentGateway) (orderID, gatewayStatus string, err error)
}

// paymentEvent resolves a `payment` callback by fetching the payment
// resource and reading its external_reference and status.
type paymentEvent struct {
	ID string
}

func (e paymentEvent) resolve(ctx context.Context, gw PaymentGateway) (string, string, error) {
	payment, err := gw.GetPayment(ctx, e.ID)
	if err != nil {
		return "", "", utils.UpstreamError("Failed to fetch payment "+e.ID, err)
	}
	return payment.ExternalReference, payment.Status, nil
}

// merchantOrderEvent resolves a `merchant_order` callback. Status
// precedence over the order's payment list: an approved payment wins,
// else a pending one, else the payment is considered failed. Trust the
// most favorable known payment state, but never report a success the
// gateway has not confirmed.
type merchantOrderEvent struct {
	ID string
}

func (e merchantOrderEvent) resolve(ctx context.Context, gw PaymentGateway) (string, string, error) {
	mo, err := gw.GetMerchantOrder(ctx, e.ID)
	if err != nil {
		return "", "", utils.UpstreamError("Failed to fetch merchant order "+e.ID, err)
	}

	status := "failed"
	for _, p := range mo.Payments {
		if p.Status == GatewayStatusApproved {
			status = GatewayStatusApproved
			break
		}
	}
	if status != GatewayStatusApproved {
		for _, p := range mo.Payments {
			if p.Status == GatewayStatusPending {
				status = GatewayStatusPending
				break
			}
		}
	}
	return mo.ExternalReference, status, nil
}

// HandleEvent processes one inbound webhook payload end to end: parse,
// dispatch to the resolver variant, map the gateway status onto the
// internal state pair, persist it, and trigger the operator
// notification on approved payments.
func (s *ReconcileService) HandleEvent(ctx context.Context, payload []byte) (*WebhookOutcome, error) {
	resolver, outcome, err := s.parseEvent(payload)
	if err != nil {
		return nil, err
	}
	if resolver == nil {
		// Acknowledged no-op; the gateway wants no retries for
		// event kinds we do not consume.
		return outcome, nil
	}

	orderID, gatewayStatus, err := resolver.resolve(ctx, s.gw)
	if err != nil {
		return nil, err
	}
	if orderID == "" || gatewayStatus == "" {
		return nil, utils.ValidationError("Could not resolve order from webhook event", nil)
	}

	paymentStatus, orderStatus := mapGatewayStatus(gatewayStatus)

	if err := s.store.UpdatePaymentState(ctx, orderID, paymentStatus, orderStatus); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, utils.NotFoundError("No order matches external reference "+orderID, err)
		}
		// Not acknowledged: surfacing 500 makes the gateway retry,
		// which is the only correct move for an unpersisted change.
		return nil, utils.PersistenceError("Failed to update order "+orderID, err)
	}
	utils.LogInfo("Reconciled order %s to payment_status=%s status=%s", orderID, paymentStatus, orderStatus)

	result := &WebhookOutcome{
		Handled:       true,
		OrderID:       orderID,
		PaymentStatus: paymentStatus,
		OrderStatus:   orderStatus,
	}

	if gatewayStatus == GatewayStatusApproved {
		result.Notified = s.notifyPaid(ctx, orderID)
	}

	return result, nil
}

// notifyPaid fires the operator notification with a freshly reloaded
// order. Best effort: the reconciliation is already committed, so
// failures here are logged and swallowed rather than rolled back.
func (s *ReconcileService) notifyPaid(ctx context.Context, orderID string) bool {
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		utils.LogError("Failed to reload order %s for notification: %v", orderID, err)
		return false
	}
	if _, err := s.notifier.Notify(ctx, order); err != nil {
		utils.LogError("Failed to notify paid order %s: %v", orderID, err)
		return false
	}
	return true
}

// parseEvent decodes the payload and selects the resolver variant. A
// nil resolver with a non-nil outcome means the event kind is
// acknowledged but ignored.
func (s *ReconcileService) parseEvent(payload []byte) (eventResolver, *WebhookOutcome, error) {
	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, nil, utils.ValidationError("Invalid webhook payload", err)
	}

	kind := event.Type
	if kind == "" {
		kind = event.Topic
	}

	switch kind {
	case "payment":
		if event.Data.ID == "" {
			return nil, nil, utils.ValidationError("Webhook payment event is missing data.id", nil)
		}
		return paymentEvent{ID: string(event.Data.ID)}, nil, nil

	case "merchant_order":
		id, err := merchantOrderID(event.Resource)
		if err != nil {
			return nil, nil, utils.ValidationError("Webhook merchant_order event has no usable resource", err)
		}
		return merchantOrderEvent{ID: id}, nil, nil

	default:
		return nil, &WebhookOutcome{Message: "Unhandled webhook type."}, nil
	}
}

// merchantOrderID extracts the merchant-order identifier from the
// resource URL's trailing path segment.
func merchantOrderID(resource string) (string, error) {
	if resource == "" {
		return "", errors.New("resource is empty")
	}
	u, err := url.Parse(resource)
	if err != nil {
		return "", err
	}
	id := path.Base(strings.TrimRight(u.Path, "/"))
	if id == "" || id == "." || id == "/" {
		return "", errors.New("resource URL has no path segment")
	}
	return id, nil
}

// mapGatewayStatus is the deterministic mapping from gateway status to
// the internal (payment_status, status) pair.
func mapGatewayStatus(gatewayStatus string) (string, string) {
	switch gatewayStatus {
	case GatewayStatusApproved:
		return models.PaymentStatusPaid, models.OrderStatusProcessing
	case GatewayStatusPending:
		return models.PaymentStatusPending, models.OrderStatusPending
	default:
		return models.PaymentStatusFailed, models.OrderStatusFailed
	}
}
