// FILE: internal/repository/memory/status_cache_test.go
package memory

import (
	"testing"

	"spacefed-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStatusCache(t *testing.T) {
	c := NewStatusCache()
	spaceID := uuid.New()

	_, found := c.Get(spaceID)
	assert.False(t, found)

	c.Set(spaceID, entity.MembershipStatusPending)
	status, found := c.Get(spaceID)
	assert.True(t, found)
	assert.Equal(t, entity.MembershipStatusPending, status)

	c.Set(spaceID, entity.MembershipStatusApproved)
	status, _ = c.Get(spaceID)
	assert.Equal(t, entity.MembershipStatusApproved, status)

	c.Invalidate(spaceID)
	_, found = c.Get(spaceID)
	assert.False(t, found)

	// Other spaces are unaffected.
	other := uuid.New()
	c.Set(other, entity.MembershipStatusRejected)
	c.Invalidate(spaceID)
	status, found = c.Get(other)
	assert.True(t, found)
	assert.Equal(t, entity.MembershipStatusRejected, status)
}
