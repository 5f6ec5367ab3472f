package memory

import (
	"time"

	"spacefed-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// StatusCache memoizes the latest membership status per space. Status reads
// happen on every directory page load; decisions are rare, so a short TTL
// plus explicit invalidation on approve/reject keeps it honest.
type StatusCache struct {
	cache *cache.Cache
}

func NewStatusCache() *StatusCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &StatusCache{
		cache: c,
	}
}

func (s *StatusCache) Get(spaceID uuid.UUID) (entity.MembershipStatus, bool) {
	if x, found := s.cache.Get(spaceID.String()); found {
		return x.(entity.MembershipStatus), true
	}
	return "", false
}

func (s *StatusCache) Set(spaceID uuid.UUID, status entity.MembershipStatus) {
	s.cache.Set(spaceID.String(), status, cache.DefaultExpiration)
}

func (s *StatusCache) Invalidate(spaceID uuid.UUID) {
	s.cache.Delete(spaceID.String())
}
