// FILE: internal/entity/membership_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "Pending"
	MembershipStatusApproved MembershipStatus = "Approved"
	MembershipStatusRejected MembershipStatus = "Rejected"
)

// SpaceMembership tracks one space's application to join the federation,
// from submission through approval and recurring payment.
type SpaceMembership struct {
	Id     uuid.UUID
	Status MembershipStatus
	// How many approval request emails have been successfully sent.
	ApprovalRequestCount int
	// Annual subscription fee, chosen by the space.
	Fee       decimal.Decimal
	Statement string
	CreatedAt time.Time
	// Date of first payment received. Nil until then.
	StartedAt *time.Time
	// Date the membership lapses. Pushed forward one year on every payment.
	ExpiredAt *time.Time
	SpaceId   uuid.UUID
	// User who submitted the application.
	AppliedById    uuid.UUID
	RedirectFlowId string
	// Correlates a redirect flow with its completion callback and
	// authorizes the approve/reject links in the board email.
	SessionToken string
}

// IsActive reports whether the membership is currently in force.
// A nil ExpiredAt always means inactive, regardless of status.
func (m *SpaceMembership) IsActive(now time.Time) bool {
	if m.ExpiredAt == nil {
		return false
	}
	return m.Status == MembershipStatusApproved && m.ExpiredAt.After(now)
}
