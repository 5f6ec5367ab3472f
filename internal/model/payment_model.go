package model

import "time"

type GocardlessPayment struct {
	Id          string     `gorm:"type:varchar(255);primaryKey"`
	MandateId   string     `gorm:"type:varchar(255);not null;index"`
	AmountCents int64      `gorm:"not null"`
	Currency    string     `gorm:"type:varchar(3);not null;default:'GBP'"`
	Status      string     `gorm:"type:varchar(50)"`
	PayoutDate  *time.Time `gorm:"type:date"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (GocardlessPayment) TableName() string {
	return "gocardless_payments"
}
