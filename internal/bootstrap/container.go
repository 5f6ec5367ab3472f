// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"context"
	"log"

	"spacefed-be/internal/config"
	"spacefed-be/internal/controller"
	"spacefed-be/internal/pkg/gocardless"
	"spacefed-be/internal/pkg/logger"
	"spacefed-be/internal/pkg/mailer"
	"spacefed-be/internal/repository/memory"
	"spacefed-be/internal/repository/unitofwork"
	"spacefed-be/internal/service"

	pktNats "spacefed-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const paymentReceivedTopic = "membership.payment-received"

type Container struct {
	// Controllers
	MembershipController controller.IMembershipController
	WebhookController    controller.IWebhookController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infrastructure, exposed for shutdown.
	NatsPublisher *pktNats.Publisher
	Redis         *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.Mail.FromEmail,
		cfg.Mail.BoardEmail,
	)

	gateway := gocardless.NewHTTPClient(cfg.Gocardless.BaseURL, cfg.Gocardless.AccessToken)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	statusCache := memory.NewStatusCache()

	// 3. Services
	publisherService := service.NewPublisherService(paymentReceivedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		paymentReceivedTopic,
		uowFactory,
		emailService,
	)

	membershipService := service.NewMembershipService(
		uowFactory,
		gateway,
		emailService,
		statusCache,
		sysLogger,
		natsPub,
		publisherService,
		cfg,
	)
	webhookService := service.NewWebhookService(
		uowFactory,
		gateway,
		membershipService,
		rdb,
		sysLogger,
		cfg,
	)

	// 4. Controllers
	membershipController := controller.NewMembershipController(membershipService)
	webhookController := controller.NewWebhookController(webhookService)

	return &Container{
		MembershipController: membershipController,
		WebhookController:    webhookController,
		ConsumerService:      consumerService,
		NatsPublisher:        natsPub,
		Redis:                rdb,
	}
}
