package memory

import (
	"testing"

	"github.com/google/uuid"
)

func TestSecretKeyCacheMatches(t *testing.T) {
	cache := NewSecretKeyCache()
	queryId := uuid.New()
	cache.Put(queryId, "abc123")

	if !cache.Matches(queryId, "abc123") {
		t.Error("expected match for stored key")
	}
	if cache.Matches(queryId, "abc124") {
		t.Error("wrong key must not match")
	}
	if cache.Matches(queryId, "abc1234") {
		t.Error("different-length key must not match")
	}
	if cache.Matches(uuid.New(), "abc123") {
		t.Error("miss on unknown query id must not match")
	}
}
