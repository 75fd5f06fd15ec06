package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePreference(t *testing.T) {
	var got PreferenceRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Preference{
			ID:               "pref-1",
			InitPoint:        "https://gw/init",
			SandboxInitPoint: "https://gw/sandbox",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	pref, err := client.CreatePreference(context.Background(), &PreferenceRequest{
		Items:             []PreferenceItem{{Title: "Blue Mug", Quantity: 2, UnitPrice: 19.99}},
		ExternalReference: "ORDER-9",
		BinaryMode:        true,
		Expires:           true,
		ExpirationDateTo:  time.Now().Add(30 * time.Minute),
	})
	require.NoError(t, err)

	assert.Equal(t, "pref-1", pref.ID)
	assert.Equal(t, "https://gw/init", pref.InitPoint)
	assert.Equal(t, "https://gw/sandbox", pref.SandboxInitPoint)

	assert.Equal(t, "ORDER-9", got.ExternalReference)
	assert.True(t, got.BinaryMode)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Blue Mug", got.Items[0].Title)
}

func TestGetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payments/555", r.URL.Path)
		json.NewEncoder(w).Encode(Payment{Status: "approved", ExternalReference: "ORDER-9"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	payment, err := client.GetPayment(context.Background(), "555")
	require.NoError(t, err)
	assert.Equal(t, "approved", payment.Status)
	assert.Equal(t, "ORDER-9", payment.ExternalReference)
}

func TestGetMerchantOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/merchant_orders/42", r.URL.Path)
		json.NewEncoder(w).Encode(MerchantOrder{
			ExternalReference: "ORDER-9",
			Payments:          []MerchantOrderPayment{{Status: "pending"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	mo, err := client.GetMerchantOrder(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "ORDER-9", mo.ExternalReference)
	require.Len(t, mo.Payments, 1)
	assert.Equal(t, "pending", mo.Payments[0].Status)
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/555", r.URL.Path)
		json.NewEncoder(w).Encode(Payment{Status: "approved", ExternalReference: "ORDER-9"})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "test-token")
	payment, err := client.GetPayment(context.Background(), "555")
	require.NoError(t, err)
	assert.Equal(t, "approved", payment.Status)
}

func TestClientWithoutToken(t *testing.T) {
	client := NewClient("https://gw", "")

	_, err := client.GetPayment(context.Background(), "555")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.CreatePreference(context.Background(), &PreferenceRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClientSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"payment not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	_, err := client.GetPayment(context.Background(), "404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "payment not found")
}
