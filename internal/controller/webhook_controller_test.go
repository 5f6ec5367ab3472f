// FILE: internal/controller/webhook_controller_test.go
package controller

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"spacefed-be/internal/pkg/serverutils"
	"spacefed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWebhookService struct {
	handle func(body []byte, signature string) error
}

func (s *stubWebhookService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	return s.handle(body, signature)
}

func newWebhookTestApp(stub *stubWebhookService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	NewWebhookController(stub).RegisterRoutes(api)
	return app
}

func TestWebhookEndpoint(t *testing.T) {
	t.Run("passes body and signature through", func(t *testing.T) {
		var gotBody []byte
		var gotSig string
		stub := &stubWebhookService{
			handle: func(body []byte, signature string) error {
				gotBody = body
				gotSig = signature
				return nil
			},
		}
		app := newWebhookTestApp(stub)

		req := httptest.NewRequest("POST", "/api/gocardless/webhook", bytes.NewReader([]byte(`{"events":[]}`)))
		req.Header.Set("Webhook-Signature", "abc123")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, `{"events":[]}`, string(gotBody))
		assert.Equal(t, "abc123", gotSig)
	})

	t.Run("bad signature maps to 401", func(t *testing.T) {
		stub := &stubWebhookService{
			handle: func(body []byte, signature string) error {
				return service.ErrInvalidWebhookSignature
			},
		}
		app := newWebhookTestApp(stub)

		req := httptest.NewRequest("POST", "/api/gocardless/webhook", bytes.NewReader([]byte(`{}`)))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
