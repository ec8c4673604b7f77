package memory

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SecretKeyCache keeps recently minted feedback secret keys in memory so
// the common case (feedback right after the answer) skips the bcrypt
// check against the database. Entries expire; the DB hash remains the
// source of truth.
type SecretKeyCache struct {
	c *cache.Cache
}

func NewSecretKeyCache() *SecretKeyCache {
	return &SecretKeyCache{
		c: cache.New(30*time.Minute, 10*time.Minute),
	}
}

func (s *SecretKeyCache) Put(queryId uuid.UUID, secretKey string) {
	s.c.Set(queryId.String(), secretKey, cache.DefaultExpiration)
}

// Matches reports whether the cached key for this query id equals the
// candidate. A miss returns false; the caller falls back to the DB.
func (s *SecretKeyCache) Matches(queryId uuid.UUID, secretKey string) bool {
	cached, found := s.c.Get(queryId.String())
	if !found {
		return false
	}
	stored, ok := cached.(string)
	if !ok || len(stored) != len(secretKey) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(secretKey)) == 1
}
