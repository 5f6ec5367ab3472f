package mapper

import (
	"spacefed-be/internal/entity"
	"spacefed-be/internal/model"
)

type SpaceMapper struct{}

func NewSpaceMapper() *SpaceMapper {
	return &SpaceMapper{}
}

func (m *SpaceMapper) ToEntity(mdl *model.Space) *entity.Space {
	if mdl == nil {
		return nil
	}
	return &entity.Space{
		Id:        mdl.Id,
		Name:      mdl.Name,
		Email:     mdl.Email,
		CreatedAt: mdl.CreatedAt,
		UpdatedAt: mdl.UpdatedAt,
	}
}

func (m *SpaceMapper) ToModel(e *entity.Space) *model.Space {
	if e == nil {
		return nil
	}
	return &model.Space{
		Id:        e.Id,
		Name:      e.Name,
		Email:     e.Email,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
