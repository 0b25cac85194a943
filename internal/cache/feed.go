package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FeedCache is a key-value handle for cached feed pages. Entries expire by
// TTL only; nothing evicts them on write, so readers may observe content up
// to one TTL window stale. That trade-off is intentional.
type FeedCache struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewFeedCache(cache *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{cache: cache, ttl: ttl}
}

// IndexKey addresses one page of the index feed.
func IndexKey(page, size int) string {
	return fmt.Sprintf("feed:index:%d:%d", page, size)
}

// Get returns the cached payload for key, or ok=false on a miss. Redis
// errors degrade to a miss; the caller falls through to the database.
func (f *FeedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := f.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores payload under key for the configured TTL. Failures are ignored;
// the cache is an optimization, not a source of truth.
func (f *FeedCache) Set(ctx context.Context, key string, payload []byte) {
	_ = f.cache.Set(ctx, key, payload, f.ttl).Err()
}

// TTL reports the configured expiry window.
func (f *FeedCache) TTL() time.Duration { return f.ttl }
