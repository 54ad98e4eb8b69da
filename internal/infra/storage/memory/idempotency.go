package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"trio/internal/app/middleware"
)

// IdempotencyStore keeps command results in memory until the TTL expires.
type IdempotencyStore struct {
	items *cache.Cache
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := 10 * time.Minute
	if ttl > 0 && ttl < cleanup {
		cleanup = ttl
	}
	return &IdempotencyStore{items: cache.New(ttl, cleanup)}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	raw, ok := s.items.Get(key)
	if !ok {
		return middleware.IdempotencyRecord{}, false, nil
	}
	rec, ok := raw.(middleware.IdempotencyRecord)
	return rec, ok, nil
}

// Save keeps the first record stored under a key.
func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	_ = s.items.Add(rec.Key, rec, cache.DefaultExpiration)
	return nil
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
