// FILE: internal/entity/membership_entity_test.go
package entity

import (
	"testing"
	"time"
)

func TestSpaceMembershipIsActive(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name      string
		status    MembershipStatus
		expiredAt *time.Time
		want      bool
	}{
		{
			name:      "approved and unexpired",
			status:    MembershipStatusApproved,
			expiredAt: &future,
			want:      true,
		},
		{
			name:      "approved but expired",
			status:    MembershipStatusApproved,
			expiredAt: &past,
			want:      false,
		},
		{
			name:      "approved but never paid",
			status:    MembershipStatusApproved,
			expiredAt: nil,
			want:      false,
		},
		{
			name:      "pending with expiry date",
			status:    MembershipStatusPending,
			expiredAt: &future,
			want:      false,
		},
		{
			name:      "rejected with expiry date",
			status:    MembershipStatusRejected,
			expiredAt: &future,
			want:      false,
		},
		{
			name:      "expiring exactly now",
			status:    MembershipStatusApproved,
			expiredAt: &now,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &SpaceMembership{Status: tt.status, ExpiredAt: tt.expiredAt}
			if got := m.IsActive(now); got != tt.want {
				t.Errorf("IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGocardlessMandateIsActive(t *testing.T) {
	var nilMandate *GocardlessMandate
	if nilMandate.IsActive() {
		t.Error("nil mandate must not be active")
	}

	if (&GocardlessMandate{Id: "MD1"}).IsActive() {
		t.Error("mandate without a gateway status must not be active")
	}

	if !(&GocardlessMandate{Id: "MD1", Status: "active"}).IsActive() {
		t.Error("confirmed mandate should be active")
	}
}
