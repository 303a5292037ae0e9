// Package cache provides a read-through cache used by the API layer in front
// of the repositories. The storage core knows nothing about it; writes go
// straight through and callers invalidate the affected keys afterwards.
package cache

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultExpiration      = 5 * time.Minute
	DefaultCleanupInterval = 15 * time.Minute
)

// ReadThrough caches values of one type under string keys, falling back to a
// fetch function on miss.
type ReadThrough[V any] struct {
	useCase string
	cache   *gocache.Cache
	log     *slog.Logger
}

// New creates a read-through cache for one use case.
func New[V any](useCase string, expiration, cleanupInterval time.Duration, log *slog.Logger) *ReadThrough[V] {
	return &ReadThrough[V]{
		useCase: useCase,
		cache:   gocache.New(expiration, cleanupInterval),
		log:     log,
	}
}

// GetOrFetch returns the cached value for key, or invokes fetch and caches
// its result. Fetch errors are returned uncached.
func (r *ReadThrough[V]) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (V, error)) (V, error) {
	if raw, found := r.cache.Get(key); found {
		if v, ok := raw.(V); ok {
			return v, nil
		}
		r.log.Error("wrong type in cache entry", "use_case", r.useCase, "key", key)
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	r.cache.Set(key, v, gocache.DefaultExpiration)
	return v, nil
}

// Invalidate drops the given keys.
func (r *ReadThrough[V]) Invalidate(keys ...string) {
	for _, key := range keys {
		r.cache.Delete(key)
	}
}

// Flush drops every cached entry for this use case.
func (r *ReadThrough[V]) Flush() {
	r.cache.Flush()
}
