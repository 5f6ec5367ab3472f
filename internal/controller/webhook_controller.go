// FILE: internal/controller/webhook_controller.go
package controller

import (
	"errors"

	"spacefed-be/internal/pkg/serverutils"
	"spacefed-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Handle(ctx *fiber.Ctx) error
}

type webhookController struct {
	webhookService service.IWebhookService
}

func NewWebhookController(webhookService service.IWebhookService) IWebhookController {
	return &webhookController{
		webhookService: webhookService,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/gocardless")
	h.Post("webhook", c.Handle)
}

// Handle receives gateway event deliveries. Anything other than 2xx makes
// the gateway redeliver, so only genuine processing failures may error out.
func (c *webhookController) Handle(ctx *fiber.Ctx) error {
	signature := ctx.Get("Webhook-Signature")

	err := c.webhookService.HandleWebhook(ctx.Context(), ctx.Body(), signature)
	if errors.Is(err, service.ErrInvalidWebhookSignature) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid webhook signature")
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Webhook processed", nil))
}
