package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when a call is attempted without an
// access token. Callers translate this into a configuration error.
var ErrNotConfigured = errors.New("gateway access token is not configured")

// PreferenceItem is one purchasable line in a payment preference.
type PreferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// PreferencePayer identifies the paying customer.
type PreferencePayer struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// BackURLs are the redirect targets the gateway sends the payer to
// after checkout completes, fails, or is left pending.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest is the payment intent handed to the gateway.
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	Payer             PreferencePayer  `json:"payer"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return,omitempty"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url"`
	Expires           bool             `json:"expires"`
	ExpirationDateTo  time.Time        `json:"expiration_date_to"`
	BinaryMode        bool             `json:"binary_mode"`
}

// Preference is the gateway's answer to a created payment intent.
type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// Payment is the gateway-side payment resource.
type Payment struct {
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
}

// MerchantOrderPayment is one payment attempt inside a merchant order.
type MerchantOrderPayment struct {
	Status string `json:"status"`
}

// MerchantOrder is the gateway-side merchant order resource.
type MerchantOrder struct {
	ExternalReference string                 `json:"external_reference"`
	Payments          []MerchantOrderPayment `json:"payments"`
}

// Client is a thin wrapper over the gateway's REST API. It only issues
// the three calls the reconciliation pipeline needs: create a payment
// preference, fetch a payment, fetch a merchant order.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient builds a gateway client. A trailing slash on baseURL is
// trimmed so joined request paths stay well formed.
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if c.accessToken == "" {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode gateway request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway call %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway responded %d for %s %s: %s", resp.StatusCode, method, path, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %v", err)
		}
	}
	return nil
}

// CreatePreference registers a payment intent and returns the redirect
// target for the payer.
func (c *Client) CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error) {
	var pref Preference
	if err := c.do(ctx, http.MethodPost, "/checkout/preferences", req, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

// GetPayment fetches a payment resource by its gateway id.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	var payment Payment
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+id, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetMerchantOrder fetches a merchant order resource by its gateway id.
func (c *Client) GetMerchantOrder(ctx context.Context, id string) (*MerchantOrder, error) {
	var mo MerchantOrder
	if err := c.do(ctx, http.MethodGet, "/merchant_orders/"+id, nil, &mo); err != nil {
		return nil, err
	}
	return &mo, nil
}
