package gocardless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the surface of the direct-debit gateway the membership core
// depends on: hosted redirect flows, mandates, and payments.
type Client interface {
	CreateRedirectFlow(ctx context.Context, req *RedirectFlowCreateRequest) (*RedirectFlow, error)
	CompleteRedirectFlow(ctx context.Context, flowID, sessionToken string) (*RedirectFlow, error)
	GetMandate(ctx context.Context, mandateID string) (*Mandate, error)
	CancelMandate(ctx context.Context, mandateID string) (*Mandate, error)
	CreatePayment(ctx context.Context, req *PaymentCreateRequest) (*Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}

type HTTPClient struct {
	BaseURL     string
	AccessToken string
	Client      *http.Client
}

var _ Client = &HTTPClient{}

func NewHTTPClient(baseURL, accessToken string) *HTTPClient {
	return &HTTPClient{
		BaseURL:     baseURL,
		AccessToken: accessToken,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// The API wraps every request and response body in an envelope keyed by the
// resource name, e.g. {"redirect_flows": {...}}.

func (c *HTTPClient) do(ctx context.Context, method, path, requestKey, responseKey string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(map[string]interface{}{requestKey: body})
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", requestKey, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("GoCardless-Version", "2015-07-06")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}

	envelope := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	raw, ok := envelope[responseKey]
	if !ok {
		return fmt.Errorf("gateway response missing %q envelope", responseKey)
	}
	return json.Unmarshal(raw, out)
}

func (c *HTTPClient) CreateRedirectFlow(ctx context.Context, req *RedirectFlowCreateRequest) (*RedirectFlow, error) {
	var flow RedirectFlow
	if err := c.do(ctx, http.MethodPost, "/redirect_flows", "redirect_flows", "redirect_flows", req, &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

func (c *HTTPClient) CompleteRedirectFlow(ctx context.Context, flowID, sessionToken string) (*RedirectFlow, error) {
	body := map[string]string{"session_token": sessionToken}
	var flow RedirectFlow
	path := fmt.Sprintf("/redirect_flows/%s/actions/complete", flowID)
	if err := c.do(ctx, http.MethodPost, path, "data", "redirect_flows", body, &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

func (c *HTTPClient) GetMandate(ctx context.Context, mandateID string) (*Mandate, error) {
	var mandate Mandate
	if err := c.do(ctx, http.MethodGet, "/mandates/"+mandateID, "mandates", "mandates", nil, &mandate); err != nil {
		return nil, err
	}
	return &mandate, nil
}

func (c *HTTPClient) CancelMandate(ctx context.Context, mandateID string) (*Mandate, error) {
	var mandate Mandate
	path := fmt.Sprintf("/mandates/%s/actions/cancel", mandateID)
	if err := c.do(ctx, http.MethodPost, path, "data", "mandates", struct{}{}, &mandate); err != nil {
		return nil, err
	}
	return &mandate, nil
}

func (c *HTTPClient) CreatePayment(ctx context.Context, req *PaymentCreateRequest) (*Payment, error) {
	body := struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Links    struct {
			Mandate string `json:"mandate"`
		} `json:"links"`
	}{
		Amount:   req.Amount,
		Currency: req.Currency,
	}
	body.Links.Mandate = req.Mandate

	var payment Payment
	if err := c.do(ctx, http.MethodPost, "/payments", "payments", "payments", body, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *HTTPClient) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var payment Payment
	if err := c.do(ctx, http.MethodGet, "/payments/"+paymentID, "payments", "payments", nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
