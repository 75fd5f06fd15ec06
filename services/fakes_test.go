package services

import (
	"context"
	"errors"

	"github.com/solemart/storefront/gateway"
	"github.com/solemart/storefront/models"
)

var errUpstream = errors.New("gateway unavailable")

type updateCall struct {
	OrderID       string
	PaymentStatus string
	OrderStatus   string
}

type fakeStore struct {
	orders     map[string]*models.Order
	updates    []updateCall
	failGet    error
	failUpdate error
}

func newFakeStore(orders ...*models.Order) *fakeStore {
	s := &fakeStore{orders: map[string]*models.Order{}}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (f *fakeStore) Get(ctx context.Context, id string) (*models.Order, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (f *fakeStore) UpdatePaymentState(ctx context.Context, id, paymentStatus, orderStatus string) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	o, ok := f.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	f.updates = append(f.updates, updateCall{OrderID: id, PaymentStatus: paymentStatus, OrderStatus: orderStatus})
	// Forward-only overwrite, mirroring the real store's guard.
	if o.Status == models.OrderStatusPending || (o.PaymentStatus == paymentStatus && o.Status == orderStatus) {
		o.PaymentStatus = paymentStatus
		o.Status = orderStatus
	}
	return nil
}

func (f *fakeStore) SetPaymentInfo(ctx context.Context, id, method, paymentURL string) error {
	o, ok := f.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.PaymentMethod = method
	o.PaymentURL = paymentURL
	return nil
}

type fakeGateway struct {
	payments       map[string]*gateway.Payment
	merchantOrders map[string]*gateway.MerchantOrder
	preference     *gateway.Preference
	preferenceErr  error
	lastPreference *gateway.PreferenceRequest

	paymentCalls       int
	merchantOrderCalls int
}

func (f *fakeGateway) CreatePreference(ctx context.Context, req *gateway.PreferenceRequest) (*gateway.Preference, error) {
	f.lastPreference = req
	if f.preferenceErr != nil {
		return nil, f.preferenceErr
	}
	if f.preference != nil {
		return f.preference, nil
	}
	return &gateway.Preference{ID: "pref-1", InitPoint: "https://gw/init", SandboxInitPoint: "https://gw/sandbox"}, nil
}

func (f *fakeGateway) GetPayment(ctx context.Context, id string) (*gateway.Payment, error) {
	f.paymentCalls++
	p, ok := f.payments[id]
	if !ok {
		return nil, errUpstream
	}
	return p, nil
}

func (f *fakeGateway) GetMerchantOrder(ctx context.Context, id string) (*gateway.MerchantOrder, error) {
	f.merchantOrderCalls++
	mo, ok := f.merchantOrders[id]
	if !ok {
		return nil, errUpstream
	}
	return mo, nil
}

type fakeChannel struct {
	sent []string
	err  error
}

func (f *fakeChannel) Send(ctx context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, text)
	return "msg-1", nil
}
