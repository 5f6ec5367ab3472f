package mapper

import (
	"spacefed-be/internal/entity"
	"spacefed-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(mdl *model.GocardlessPayment) *entity.GocardlessPayment {
	if mdl == nil {
		return nil
	}
	return &entity.GocardlessPayment{
		Id:          mdl.Id,
		MandateId:   mdl.MandateId,
		AmountCents: mdl.AmountCents,
		Currency:    mdl.Currency,
		Status:      mdl.Status,
		PayoutDate:  mdl.PayoutDate,
		CreatedAt:   mdl.CreatedAt,
		UpdatedAt:   mdl.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(e *entity.GocardlessPayment) *model.GocardlessPayment {
	if e == nil {
		return nil
	}
	return &model.GocardlessPayment{
		Id:          e.Id,
		MandateId:   e.MandateId,
		AmountCents: e.AmountCents,
		Currency:    e.Currency,
		Status:      e.Status,
		PayoutDate:  e.PayoutDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
