// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/taibuivan/otakurin/pkg/slug"
)

const (
	cacheShards             = 64
	cacheEvictionPercentage = 10
)

// CachedClient memoizes SearchByTitle for a short TTL. GetByID is never
// cached: the media tables are the durable cache for full records.
type CachedClient[R RemoteID] struct {
	next   Client[R]
	prefix string
	cache  *sturdyc.Client[[]BasicSummary[R]]
}

// NewCachedClient wraps next. prefix keeps the keys of different kinds apart.
func NewCachedClient[R RemoteID](next Client[R], prefix string, capacity int, ttl time.Duration) *CachedClient[R] {
	return &CachedClient[R]{
		next:   next,
		prefix: prefix,
		cache:  sturdyc.New[[]BasicSummary[R]](capacity, cacheShards, ttl, cacheEvictionPercentage),
	}
}

// SearchByTitle serves repeated searches for the same normalized title from memory.
// Failed searches are not cached.
func (c *CachedClient[R]) SearchByTitle(ctx context.Context, title string) ([]BasicSummary[R], error) {
	return c.cache.GetOrFetch(ctx, c.key(title), func(ctx context.Context) ([]BasicSummary[R], error) {
		return c.next.SearchByTitle(ctx, title)
	})
}

// GetByID passes through to the wrapped client.
func (c *CachedClient[R]) GetByID(ctx context.Context, id R) (*Summary[R], error) {
	return c.next.GetByID(ctx, id)
}

func (c *CachedClient[R]) key(title string) string {
	normalized := slug.From(title)
	if normalized == "" {
		normalized = "raw:" + strings.ToLower(strings.TrimSpace(title))
	}
	return c.prefix + ":search:" + normalized
}
