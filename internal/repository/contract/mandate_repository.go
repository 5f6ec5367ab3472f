package contract

import (
	"context"

	"spacefed-be/internal/entity"
	"spacefed-be/internal/repository/specification"
)

type MandateRepository interface {
	Create(ctx context.Context, mandate *entity.GocardlessMandate) error
	Update(ctx context.Context, mandate *entity.GocardlessMandate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GocardlessMandate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GocardlessMandate, error)
}
