// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"spacefed-be/internal/dto"
	"spacefed-be/internal/pkg/mailer"
	"spacefed-be/internal/repository/specification"
	"spacefed-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the payment-received topic and sends the
// confirmation email outside the webhook request path, so a slow SMTP
// server never delays the gateway's delivery acknowledgement.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PaymentReceivedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Sending payment confirmation for MembershipId: %s", payload.MembershipId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: payload.MembershipId})
	if err != nil {
		log.Printf("[ERROR] Failed to get membership %s: %v", payload.MembershipId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if membership == nil {
		log.Printf("[ERROR] Membership not found: %s", payload.MembershipId)
		msg.Ack() // Membership deleted? Ack.
		return
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: membership.AppliedById})
	if err != nil {
		log.Printf("[ERROR] Failed to get applicant for membership %s: %v", membership.Id, err)
		msg.Nack()
		return
	}
	space, err := uow.SpaceRepository().FindOne(ctx, specification.ByID{ID: membership.SpaceId})
	if err != nil {
		log.Printf("[ERROR] Failed to get space for membership %s: %v", membership.Id, err)
		msg.Nack()
		return
	}
	if user == nil || space == nil {
		log.Printf("[ERROR] Dangling membership %s (user or space missing)", membership.Id)
		msg.Ack()
		return
	}

	expiresAt := "-"
	if membership.ExpiredAt != nil {
		expiresAt = membership.ExpiredAt.Format("2 January 2006")
	}

	data := mailer.PaymentReceivedEmail{
		ApplicantFirstName: user.FirstName,
		SpaceName:          space.Name,
		ExpiresAt:          expiresAt,
	}
	if err := cs.emailService.SendPaymentReceived(user.Email, space.Email, data); err != nil {
		log.Printf("[ERROR] Failed to send payment confirmation for membership %s: %v", membership.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Payment confirmation sent for MembershipId: %s", payload.MembershipId)
	msg.Ack()
}
