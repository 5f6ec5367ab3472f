package model

import (
	"time"

	"github.com/google/uuid"
)

type GocardlessMandate struct {
	// Gateway-assigned id, e.g. "MD0001ABC".
	Id                    string    `gorm:"type:varchar(255);primaryKey"`
	SpaceMembershipId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Reference             string    `gorm:"type:varchar(255)"`
	Status                string    `gorm:"type:varchar(50)"`
	CustomerId            string    `gorm:"type:varchar(255)"`
	CreditorId            string    `gorm:"type:varchar(255)"`
	CustomerBankAccountId string    `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (GocardlessMandate) TableName() string {
	return "gocardless_mandates"
}
