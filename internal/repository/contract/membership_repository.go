package contract

import (
	"context"

	"spacefed-be/internal/entity"
	"spacefed-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.SpaceMembership) error
	Update(ctx context.Context, membership *entity.SpaceMembership) error
	// FindOne returns (nil, nil) when no record matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SpaceMembership, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SpaceMembership, error)

	// UpdateStatusIfPending performs a conditional transition out of Pending
	// as a single UPDATE, so concurrent approve/reject calls cannot both win.
	// Returns false when the membership was no longer Pending.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entity.MembershipStatus) (bool, error)
}
