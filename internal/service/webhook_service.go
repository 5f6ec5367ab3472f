// FILE: internal/service/webhook_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spacefed-be/internal/config"
	"spacefed-be/internal/pkg/gocardless"
	"spacefed-be/internal/pkg/logger"
	"spacefed-be/internal/repository/specification"
	"spacefed-be/internal/repository/unitofwork"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
)

var ErrInvalidWebhookSignature = errors.New("invalid webhook signature")

const (
	webhookDedupeKeyPrefix = "gc:webhook:event:"
	webhookDedupeTTL       = 48 * time.Hour
)

type IWebhookService interface {
	// HandleWebhook verifies the signature and processes every event in the
	// payload. Returns ErrInvalidWebhookSignature when the signature check
	// fails; any other error means the gateway should redeliver.
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

type webhookService struct {
	uowFactory        unitofwork.RepositoryFactory
	gateway           gocardless.Client
	membershipService IMembershipService
	rdb               *redis.Client
	logger            logger.ILogger
	webhookSecret     string
}

func NewWebhookService(
	uowFactory unitofwork.RepositoryFactory,
	gateway gocardless.Client,
	membershipService IMembershipService,
	rdb *redis.Client,
	sysLogger logger.ILogger,
	cfg *config.Config,
) IWebhookService {
	return &webhookService{
		uowFactory:        uowFactory,
		gateway:           gateway,
		membershipService: membershipService,
		rdb:               rdb,
		logger:            sysLogger,
		webhookSecret:     cfg.Gocardless.WebhookSecret,
	}
}

func (s *webhookService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !gocardless.VerifyWebhookSignature(body, signature, s.webhookSecret) {
		return ErrInvalidWebhookSignature
	}

	payload, err := gocardless.ParseWebhookPayload(body)
	if err != nil {
		return fmt.Errorf("malformed webhook payload: %w", err)
	}

	for _, event := range payload.Events {
		if err := s.processEvent(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// processEvent claims the event, dispatches it, and only records it as seen
// once processing succeeded. A transient failure therefore leaves no seen
// mark behind, so the gateway's redelivery gets a clean retry instead of
// being discarded as a duplicate.
func (s *webhookService) processEvent(ctx context.Context, event gocardless.WebhookEvent) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	seen, err := uow.WebhookEventRepository().Seen(ctx, event.Id)
	if err != nil {
		return err
	}
	if !seen && s.rdb != nil {
		key := webhookDedupeKeyPrefix + event.Id
		set, err := s.rdb.SetNX(ctx, key, 1, webhookDedupeTTL).Result()
		if err != nil {
			s.logger.Warn("webhook", "redis dedupe check failed, falling back to database", map[string]interface{}{
				"event_id": event.Id,
				"error":    err.Error(),
			})
		} else if !set {
			seen = true
		}
	}
	if seen {
		s.logger.Info("webhook", "skipping already-processed event", map[string]interface{}{
			"event_id": event.Id,
		})
		return nil
	}

	s.logger.Info("webhook", "processing event", map[string]interface{}{
		"event_id":      event.Id,
		"resource_type": event.ResourceType,
		"action":        event.Action,
	})

	if err := s.dispatchEvent(ctx, event); err != nil {
		s.releaseClaim(ctx, event.Id)
		return err
	}

	raw, err := json.Marshal(event)
	if err != nil {
		s.releaseClaim(ctx, event.Id)
		return err
	}
	if _, err := uow.WebhookEventRepository().Record(ctx, event.Id, event.ResourceType, event.Action, datatypes.JSON(raw)); err != nil {
		// Processing is idempotent; let the gateway redeliver and re-record.
		s.releaseClaim(ctx, event.Id)
		return err
	}
	return nil
}

func (s *webhookService) dispatchEvent(ctx context.Context, event gocardless.WebhookEvent) error {
	switch event.ResourceType {
	case "payments":
		return s.processPaymentEvent(ctx, event)
	case "mandates":
		return s.processMandateEvent(ctx, event)
	default:
		// Unknown resource types are acknowledged, not retried.
		s.logger.Info("webhook", "ignoring event for unhandled resource type", map[string]interface{}{
			"event_id":      event.Id,
			"resource_type": event.ResourceType,
		})
		return nil
	}
}

// releaseClaim drops the Redis fast-path key so a redelivery of the same
// event is not mistaken for a duplicate after a failed attempt.
func (s *webhookService) releaseClaim(ctx context.Context, eventId string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, webhookDedupeKeyPrefix+eventId).Err(); err != nil {
		s.logger.Warn("webhook", "failed to release dedupe claim", map[string]interface{}{
			"event_id": eventId,
			"error":    err.Error(),
		})
	}
}

func (s *webhookService) processPaymentEvent(ctx context.Context, event gocardless.WebhookEvent) error {
	resource, err := s.gateway.GetPayment(ctx, event.Links.Payment)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.Filter("id", resource.Id))
	if err != nil {
		return err
	}
	if payment == nil {
		s.logger.Warn("webhook", "payment event for unknown payment", map[string]interface{}{
			"event_id":   event.Id,
			"payment_id": resource.Id,
		})
		return nil
	}

	payment.Status = resource.Status
	if resource.PayoutDate != "" {
		payoutDate, err := time.Parse("2006-01-02", resource.PayoutDate)
		if err != nil {
			return fmt.Errorf("unparseable payout_date %q: %w", resource.PayoutDate, err)
		}
		payment.PayoutDate = &payoutDate
	}
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return err
	}

	if event.Action != "paid_out" {
		return nil
	}

	mandate, err := uow.MandateRepository().FindOne(ctx, specification.Filter("id", payment.MandateId))
	if err != nil {
		return err
	}
	if mandate == nil {
		s.logger.Warn("webhook", "paid_out payment has no local mandate", map[string]interface{}{
			"payment_id": payment.Id,
			"mandate_id": payment.MandateId,
		})
		return nil
	}

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: mandate.SpaceMembershipId})
	if err != nil {
		return err
	}
	if membership == nil {
		s.logger.Warn("webhook", "paid_out payment has no local membership", map[string]interface{}{
			"payment_id":    payment.Id,
			"membership_id": mandate.SpaceMembershipId,
		})
		return nil
	}

	return s.membershipService.HandlePaymentReceived(ctx, membership, payment)
}

func (s *webhookService) processMandateEvent(ctx context.Context, event gocardless.WebhookEvent) error {
	resource, err := s.gateway.GetMandate(ctx, event.Links.Mandate)
	if err != nil {
		return err
	}
	return s.membershipService.HandleMandateUpdated(ctx, resource)
}
