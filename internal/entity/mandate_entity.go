// FILE: internal/entity/mandate_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GocardlessMandate is a persisted record of a direct-debit mandate created
// through a completed redirect flow. The id is assigned by the gateway.
// A membership can accumulate several mandates over time; the most recently
// created one is "the current mandate".
type GocardlessMandate struct {
	Id                    string
	SpaceMembershipId     uuid.UUID
	Reference             string
	Status                string
	CustomerId            string
	CreditorId            string
	CustomerBankAccountId string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsActive reports whether the mandate is usable for collecting payments.
// An empty status means the mandate was never confirmed by the gateway.
func (m *GocardlessMandate) IsActive() bool {
	return m != nil && m.Status != ""
}
