// FILE: internal/pkg/gocardless/client_test.go
package gocardless

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRedirectFlow(t *testing.T) {
	var captured map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/redirect_flows", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2015-07-06", r.Header.Get("GoCardless-Version"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"redirect_flows":{"id":"RE123","redirect_url":"https://pay.gocardless.com/flow/RE123"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret-token")
	flow, err := client.CreateRedirectFlow(context.Background(), &RedirectFlowCreateRequest{
		Description:  "Space Membership",
		SessionToken: "tok",
	})
	require.NoError(t, err)

	assert.Equal(t, "RE123", flow.Id)
	assert.Equal(t, "https://pay.gocardless.com/flow/RE123", flow.RedirectURL)
	assert.Contains(t, captured, "redirect_flows", "request body is wrapped in the resource envelope")
}

func TestCompleteRedirectFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/redirect_flows/RE123/actions/complete", r.URL.Path)

		var envelope map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		assert.Equal(t, "tok", envelope["data"]["session_token"], "completion wraps the body in a data envelope")

		w.Write([]byte(`{"redirect_flows":{"id":"RE123","links":{"mandate":"MD123","customer":"CU123"}}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret-token")
	flow, err := client.CompleteRedirectFlow(context.Background(), "RE123", "tok")
	require.NoError(t, err)
	assert.Equal(t, "MD123", flow.Links.Mandate)
}

func TestCancelMandate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/mandates/MD123/actions/cancel", r.URL.Path)
		w.Write([]byte(`{"mandates":{"id":"MD123","status":"cancelled"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret-token")
	mandate, err := client.CancelMandate(context.Background(), "MD123")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", mandate.Status)
}

func TestCreatePaymentNestsMandateLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var envelope struct {
			Payments struct {
				Amount   int64  `json:"amount"`
				Currency string `json:"currency"`
				Links    struct {
					Mandate string `json:"mandate"`
				} `json:"links"`
			} `json:"payments"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		assert.Equal(t, int64(2000), envelope.Payments.Amount)
		assert.Equal(t, "GBP", envelope.Payments.Currency)
		assert.Equal(t, "MD123", envelope.Payments.Links.Mandate)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"payments":{"id":"PM123","amount":2000,"currency":"GBP","status":"pending_submission"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret-token")
	payment, err := client.CreatePayment(context.Background(), &PaymentCreateRequest{
		Amount:   2000,
		Currency: "GBP",
		Mandate:  "MD123",
	})
	require.NoError(t, err)
	assert.Equal(t, "PM123", payment.Id)
}

func TestGetPaymentPayoutDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/PM123", r.URL.Path)
		w.Write([]byte(`{"payments":{"id":"PM123","status":"paid_out","payout_date":"2026-03-01"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret-token")
	payment, err := client.GetPayment(context.Background(), "PM123")
	require.NoError(t, err)
	assert.Equal(t, "paid_out", payment.Status)
	assert.Equal(t, "2026-03-01", payment.PayoutDate)
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"message":"Invalid session token"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret-token")
	_, err := client.CompleteRedirectFlow(context.Background(), "RE123", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "Invalid session token")
}
