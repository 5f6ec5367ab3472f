package mapper

import (
	"spacefed-be/internal/entity"
	"spacefed-be/internal/model"
)

type MandateMapper struct{}

func NewMandateMapper() *MandateMapper {
	return &MandateMapper{}
}

func (m *MandateMapper) ToEntity(mdl *model.GocardlessMandate) *entity.GocardlessMandate {
	if mdl == nil {
		return nil
	}
	return &entity.GocardlessMandate{
		Id:                    mdl.Id,
		SpaceMembershipId:     mdl.SpaceMembershipId,
		Reference:             mdl.Reference,
		Status:                mdl.Status,
		CustomerId:            mdl.CustomerId,
		CreditorId:            mdl.CreditorId,
		CustomerBankAccountId: mdl.CustomerBankAccountId,
		CreatedAt:             mdl.CreatedAt,
		UpdatedAt:             mdl.UpdatedAt,
	}
}

func (m *MandateMapper) ToModel(e *entity.GocardlessMandate) *model.GocardlessMandate {
	if e == nil {
		return nil
	}
	return &model.GocardlessMandate{
		Id:                    e.Id,
		SpaceMembershipId:     e.SpaceMembershipId,
		Reference:             e.Reference,
		Status:                e.Status,
		CustomerId:            e.CustomerId,
		CreditorId:            e.CreditorId,
		CustomerBankAccountId: e.CustomerBankAccountId,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}
