package model

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEvent stores every gateway event we have accepted, keyed by the
// gateway's event id. The unique key doubles as the durable dedupe guard
// behind the Redis fast path.
type WebhookEvent struct {
	Id           string         `gorm:"type:varchar(255);primaryKey"`
	ResourceType string         `gorm:"type:varchar(50);not null"`
	Action       string         `gorm:"type:varchar(50);not null"`
	Payload      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (WebhookEvent) TableName() string {
	return "gocardless_webhook_events"
}
