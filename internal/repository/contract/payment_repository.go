package contract

import (
	"context"

	"spacefed-be/internal/entity"
	"spacefed-be/internal/repository/specification"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.GocardlessPayment) error
	Update(ctx context.Context, payment *entity.GocardlessPayment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GocardlessPayment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GocardlessPayment, error)
}
