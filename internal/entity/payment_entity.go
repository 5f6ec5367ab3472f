// FILE: internal/entity/payment_entity.go
package entity

import "time"

// GocardlessPayment is a payment collected against a mandate. PayoutDate is
// the date the collected money is transferred to us; it anchors the renewal
// year and stays nil until the gateway reports the payout.
type GocardlessPayment struct {
	Id          string
	MandateId   string
	AmountCents int64
	Currency    string
	Status      string
	PayoutDate  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
