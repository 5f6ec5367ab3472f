package mapper

import (
	"spacefed-be/internal/entity"
	"spacefed-be/internal/model"
)

type MembershipMapper struct{}

func NewMembershipMapper() *MembershipMapper {
	return &MembershipMapper{}
}

func (m *MembershipMapper) ToEntity(mdl *model.SpaceMembership) *entity.SpaceMembership {
	if mdl == nil {
		return nil
	}
	return &entity.SpaceMembership{
		Id:                   mdl.Id,
		Status:               entity.MembershipStatus(mdl.Status),
		ApprovalRequestCount: mdl.ApprovalRequestCount,
		Fee:                  mdl.Fee,
		Statement:            mdl.Statement,
		CreatedAt:            mdl.CreatedAt,
		StartedAt:            mdl.StartedAt,
		ExpiredAt:            mdl.ExpiredAt,
		SpaceId:              mdl.SpaceId,
		AppliedById:          mdl.AppliedById,
		RedirectFlowId:       mdl.RedirectFlowId,
		SessionToken:         mdl.SessionToken,
	}
}

func (m *MembershipMapper) ToModel(e *entity.SpaceMembership) *model.SpaceMembership {
	if e == nil {
		return nil
	}
	return &model.SpaceMembership{
		Id:                   e.Id,
		Status:               string(e.Status),
		ApprovalRequestCount: e.ApprovalRequestCount,
		Fee:                  e.Fee,
		Statement:            e.Statement,
		CreatedAt:            e.CreatedAt,
		StartedAt:            e.StartedAt,
		ExpiredAt:            e.ExpiredAt,
		SpaceId:              e.SpaceId,
		AppliedById:          e.AppliedById,
		RedirectFlowId:       e.RedirectFlowId,
		SessionToken:         e.SessionToken,
	}
}
