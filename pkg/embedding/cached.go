package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// CachedProvider decorates an EmbeddingProvider with a Redis cache keyed
// by a hash of the input text. Identical queries are common (paraphrased
// questions collapse onto the same text), so repeated model calls are
// avoided. Cache failures fall through to the inner provider.
type CachedProvider struct {
	inner EmbeddingProvider
	rdb   *redis.Client
}

func NewCachedProvider(inner EmbeddingProvider, rdb *redis.Client) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
	}
}

func (p *CachedProvider) Dimension() int {
	return p.inner.Dimension()
}

func (p *CachedProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	key := p.cacheKey(text)

	if cached, err := p.rdb.Get(ctx, key).Bytes(); err == nil {
		var vector []float32
		if err := json.Unmarshal(cached, &vector); err == nil && len(vector) == p.inner.Dimension() {
			return vector, nil
		}
	}

	vector, err := p.inner.Generate(ctx, text)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(vector); err == nil {
		// best effort, a failed SET never fails the request
		p.rdb.Set(ctx, key, encoded, cacheTTL)
	}

	return vector, nil
}

func (p *CachedProvider) cacheKey(text string) string {
	// dimension in the key keeps vectors from different models apart
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embedding:%d:%x", p.inner.Dimension(), sum)
}
