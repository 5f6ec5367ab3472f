package gocardless

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// WebhookPayload is the envelope the gateway POSTs to us. One request can
// carry several events.
type WebhookPayload struct {
	Events []WebhookEvent `json:"events"`
}

type WebhookEvent struct {
	Id           string            `json:"id"`
	ResourceType string            `json:"resource_type"` // "payments", "mandates"
	Action       string            `json:"action"`        // "paid_out", "cancelled", ...
	Links        WebhookEventLinks `json:"links"`
}

type WebhookEventLinks struct {
	Payment string `json:"payment,omitempty"`
	Mandate string `json:"mandate,omitempty"`
}

func ParseWebhookPayload(body []byte) (*WebhookPayload, error) {
	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// VerifyWebhookSignature checks the Webhook-Signature header: hex-encoded
// HMAC-SHA256 of the raw body under the shared webhook secret.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
