package services

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/pressroomhq/pressroom/pkg/internal/cache"
)

// cachedCount serves a derived post-count aggregate through the local cache
// when one is wired in, falling back to the live query otherwise. Entries
// share the post-count tag so any post write can invalidate them together.
func cachedCount(m *marshaler.Marshaler, key string, query func() (int64, error)) (int64, error) {
	if m == nil {
		return query()
	}

	ctx := context.Background()
	if hit, err := m.Get(ctx, key, new(int64)); err == nil {
		if count, ok := hit.(*int64); ok {
			return *count, nil
		}
	}

	count, err := query()
	if err != nil {
		return 0, err
	}

	_ = m.Set(ctx, key, count,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{cache.TagPostCount}),
	)

	return count, nil
}
