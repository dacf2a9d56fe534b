// Package cache keeps a small in-process store for derived aggregates such
// as per-category and per-tag post counts. Entries are tagged so post writes
// can drop every count at once instead of tracking keys individually.
package cache

import (
	"context"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

const TagPostCount = "post-count"

func NewMarshaler() (*marshaler.Marshaler, error) {
	backend, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     32 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	s := ristretto_store.NewRistretto(backend)
	return marshaler.New(cache.New[any](s)), nil
}

// InvalidatePostCounts drops every cached post-count aggregate.
func InvalidatePostCounts(ctx context.Context, m *marshaler.Marshaler) {
	if m == nil {
		return
	}
	_ = m.Invalidate(ctx, store.WithInvalidateTags([]string{TagPostCount}))
}
