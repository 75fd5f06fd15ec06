package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solemart/storefront/utils"
)

func TestNotifySendsFormattedSummary(t *testing.T) {
	channel := &fakeChannel{}
	notifier := NewOrderNotifier(channel)

	result, err := notifier.Notify(context.Background(), testOrder())
	require.NoError(t, err)
	assert.Equal(t, "msg-1", result.MessageID)
	assert.False(t, result.Timestamp.IsZero())

	require.Len(t, channel.sent, 1)
	assert.Equal(t, FormatOrderSummary(testOrder()), channel.sent[0])
}

func TestNotifyWrapsChannelFailure(t *testing.T) {
	channel := &fakeChannel{err: errors.New("smtp down")}
	notifier := NewOrderNotifier(channel)

	_, err := notifier.Notify(context.Background(), testOrder())
	assert.True(t, utils.IsUpstreamError(err))
}

func TestNotifyKeepsConfigurationErrorKind(t *testing.T) {
	// An unconfigured channel reports missing credentials; that must
	// not be reclassified as an upstream failure.
	channel := &fakeChannel{err: utils.ConfigurationError("Notification channel is not configured", nil)}
	notifier := NewOrderNotifier(channel)

	_, err := notifier.Notify(context.Background(), testOrder())
	assert.True(t, utils.IsConfigurationError(err))
	assert.False(t, utils.IsUpstreamError(err))
}

func TestFormatOrderSummaryGuest(t *testing.T) {
	summary := FormatOrderSummary(testOrder())

	assert.Contains(t, summary, "Order ORDER-9")
	assert.Contains(t, summary, "Customer: Maria Elena Perez (guest)")
	assert.Contains(t, summary, "Email: maria@example.com")
	assert.Contains(t, summary, "Ship to: Av. Siempre Viva 742, Buenos Aires, BA, C1000")
	assert.Contains(t, summary, "- Blue Mug x2 @ 19.99 = 39.98")
	assert.Contains(t, summary, "- Sticker x1 @ 5.02 = 5.02")
	assert.Contains(t, summary, "Total: 45.00")
}

func TestFormatOrderSummaryRegistered(t *testing.T) {
	order := testOrder()
	userID := "user-1"
	order.UserID = &userID

	summary := FormatOrderSummary(order)
	assert.Contains(t, summary, "(registered)")
}

func TestFormatOrderSummaryUnknownCustomer(t *testing.T) {
	order := testOrder()
	order.CustomerName = ""

	summary := FormatOrderSummary(order)
	assert.Contains(t, summary, "Customer: Unknown customer (guest)")
}
