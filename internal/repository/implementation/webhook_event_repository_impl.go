package implementation

import (
	"context"

	"spacefed-be/internal/model"
	"spacefed-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookEventRepositoryImpl struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) contract.WebhookEventRepository {
	return &WebhookEventRepositoryImpl{db: db}
}

func (r *WebhookEventRepositoryImpl) Seen(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WebhookEvent{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WebhookEventRepositoryImpl) Record(ctx context.Context, id, resourceType, action string, payload datatypes.JSON) (bool, error) {
	m := &model.WebhookEvent{
		Id:           id,
		ResourceType: resourceType,
		Action:       action,
		Payload:      payload,
	}
	// ON CONFLICT DO NOTHING: RowsAffected == 0 means we saw it before.
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
