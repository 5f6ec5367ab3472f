package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpaceOwnedBy filters membership records for one space.
type SpaceOwnedBy struct {
	SpaceID uuid.UUID
}

func (s SpaceOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("space_id = ?", s.SpaceID)
}

// MembershipOwnedBy filters mandate records for one membership.
type MembershipOwnedBy struct {
	MembershipID uuid.UUID
}

func (s MembershipOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("space_membership_id = ?", s.MembershipID)
}

// BySessionToken resolves the membership behind an emailed approval link.
type BySessionToken struct {
	Token string
}

func (s BySessionToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_token = ?", s.Token)
}

// StatusIs filters memberships by application status.
type StatusIs struct {
	Status string
}

func (s StatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
