package unitofwork

import (
	"context"

	"spacefed-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SpaceRepository() contract.SpaceRepository
	UserRepository() contract.UserRepository
	MembershipRepository() contract.MembershipRepository
	MandateRepository() contract.MandateRepository
	PaymentRepository() contract.PaymentRepository
	WebhookEventRepository() contract.WebhookEventRepository
}
