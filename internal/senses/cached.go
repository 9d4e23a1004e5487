package senses

import (
	"context"
	"encoding/json"
	"time"

	"github.com/varlex/varlex/internal/cache"
)

// CachedResolver memoizes lookups of an underlying resolver. Sense lookup
// is a pure function of (word, language) for a fixed lexical resource, so
// cached results are safe within and across runs.
type CachedResolver struct {
	inner Resolver
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedResolver wraps inner with the given cache
func NewCachedResolver(inner Resolver, c cache.Cache, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// cachedLookup is the serialized cache payload. Lookup errors are not
// cached: only definite answers (including the definite "no senses") are.
type cachedLookup struct {
	Senses []Sense `json:"senses"`
}

// Lookup serves from cache when possible, falling through to the inner
// resolver otherwise
func (r *CachedResolver) Lookup(ctx context.Context, word, language string) ([]Sense, error) {
	key := cache.Key(language, word)

	if data, found := r.cache.Get(key); found {
		var entry cachedLookup
		if err := json.Unmarshal(data, &entry); err == nil {
			return entry.Senses, nil
		}
		// Corrupt entry: drop it and re-resolve
		_ = r.cache.Delete(key)
	}

	senses, err := r.inner.Lookup(ctx, word, language)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(cachedLookup{Senses: senses}); err == nil {
		_ = r.cache.Set(key, data, r.ttl)
	}

	return senses, nil
}
