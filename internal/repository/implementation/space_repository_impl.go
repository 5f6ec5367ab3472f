package implementation

import (
	"context"
	"errors"

	"spacefed-be/internal/entity"
	"spacefed-be/internal/mapper"
	"spacefed-be/internal/model"
	"spacefed-be/internal/repository/contract"
	"spacefed-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SpaceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SpaceMapper
}

func NewSpaceRepository(db *gorm.DB) contract.SpaceRepository {
	return &SpaceRepositoryImpl{
		db:     db,
		mapper: mapper.NewSpaceMapper(),
	}
}

func (r *SpaceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SpaceRepositoryImpl) Create(ctx context.Context, space *entity.Space) error {
	m := r.mapper.ToModel(space)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*space = *r.mapper.ToEntity(m)
	return nil
}

func (r *SpaceRepositoryImpl) Update(ctx context.Context, space *entity.Space) error {
	m := r.mapper.ToModel(space)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*space = *r.mapper.ToEntity(m)
	return nil
}

func (r *SpaceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Space, error) {
	var m model.Space
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
