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

type MandateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MandateMapper
}

func NewMandateRepository(db *gorm.DB) contract.MandateRepository {
	return &MandateRepositoryImpl{
		db:     db,
		mapper: mapper.NewMandateMapper(),
	}
}

func (r *MandateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MandateRepositoryImpl) Create(ctx context.Context, mandate *entity.GocardlessMandate) error {
	m := r.mapper.ToModel(mandate)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mandate = *r.mapper.ToEntity(m)
	return nil
}

func (r *MandateRepositoryImpl) Update(ctx context.Context, mandate *entity.GocardlessMandate) error {
	m := r.mapper.ToModel(mandate)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*mandate = *r.mapper.ToEntity(m)
	return nil
}

func (r *MandateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GocardlessMandate, error) {
	var m model.GocardlessMandate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MandateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GocardlessMandate, error) {
	var models []*model.GocardlessMandate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.GocardlessMandate, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
