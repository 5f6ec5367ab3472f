package contract

import (
	"context"

	"spacefed-be/internal/entity"
	"spacefed-be/internal/repository/specification"
)

type SpaceRepository interface {
	Create(ctx context.Context, space *entity.Space) error
	Update(ctx context.Context, space *entity.Space) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Space, error)
}
