package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/solemart/storefront/models"
	"github.com/solemart/storefront/utils"
)

// NotificationResult reports a dispatched operator notification.
type NotificationResult struct {
	MessageID string
	Timestamp time.Time
}

// OrderNotifier formats an order summary and dispatches it to the
// operator channel. Delivery is at-least-once: a duplicate admin
// notification is a nuisance, a lost one is not acceptable, so there
// is no "already notified" flag anywhere.
type OrderNotifier struct {
	channel NotificationChannel
}

// NewOrderNotifier wires the notifier to its channel.
func NewOrderNotifier(channel NotificationChannel) *OrderNotifier {
	return &OrderNotifier{channel: channel}
}

// Notify formats and sends the summary for one order.
func (n *OrderNotifier) Notify(ctx context.Context, order *models.Order) (*NotificationResult, error) {
	messageID, err := n.channel.Send(ctx, FormatOrderSummary(order))
	if err != nil {
		// A channel that already classified its failure, such as one
		// reporting missing credentials, keeps its kind.
		if appErr := utils.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, utils.UpstreamError("Failed to dispatch order notification", err)
	}
	utils.LogInfo("Dispatched notification %s for order %s", messageID, order.ID)
	return &NotificationResult{MessageID: messageID, Timestamp: time.Now()}, nil
}

// FormatOrderSummary renders the human-readable operator summary:
// customer identity, delivery address, payment details, and the
// itemized list with subtotals.
func FormatOrderSummary(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order %s\n", order.ID)

	customer := order.CustomerName
	if customer == "" {
		customer = "Unknown customer"
	}
	if order.IsGuest() {
		fmt.Fprintf(&b, "Customer: %s (guest)\n", customer)
	} else {
		fmt.Fprintf(&b, "Customer: %s (registered)\n", customer)
	}
	if order.CustomerEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", order.CustomerEmail)
	}
	if order.CustomerPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", order.CustomerPhone)
	}

	address := shippingLine(order.ShippingLine1, order.ShippingLine2, order.ShippingCity, order.ShippingState, order.PostalCode)
	if address != "" {
		fmt.Fprintf(&b, "Ship to: %s\n", address)
	}

	fmt.Fprintf(&b, "Payment: %s (%s)\n", order.PaymentMethod, order.PaymentStatus)
	fmt.Fprintf(&b, "Status: %s\n", order.Status)

	b.WriteString("Items:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  - %s x%d @ %.2f = %.2f\n", item.Title, item.Quantity, item.UnitPrice, item.Total)
	}
	fmt.Fprintf(&b, "Total: %.2f\n", order.Total)

	return b.String()
}
