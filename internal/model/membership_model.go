package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SpaceMembership struct {
	Id                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Status               string          `gorm:"type:varchar(50);not null;default:'Pending'"`
	ApprovalRequestCount int             `gorm:"not null;default:0"`
	Fee                  decimal.Decimal `gorm:"type:decimal(8,2);not null;default:20.00"`
	Statement            string          `gorm:"type:text"`
	CreatedAt            time.Time       `gorm:"autoCreateTime"`
	StartedAt            *time.Time      `gorm:"type:date"`
	ExpiredAt            *time.Time      `gorm:"type:date"`
	SpaceId              uuid.UUID       `gorm:"type:uuid;not null;index"`
	AppliedById          uuid.UUID       `gorm:"type:uuid;not null;index"`
	RedirectFlowId       string          `gorm:"type:text"`
	SessionToken         string          `gorm:"type:varchar(32);index"`
}

func (SpaceMembership) TableName() string {
	return "space_memberships"
}
