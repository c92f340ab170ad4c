package levels

import (
	"context"

	"github.com/pinchlab/yoyak/internal/models"
)

// CachedProvider wraps a Provider with the process-lifetime cache. Racing
// fetches for the same key each compute independently and the last writer
// wins; no locking is held across the inner fetch.
type CachedProvider struct {
	inner Provider
	cache *Cache
}

// NewCachedProvider wraps inner with cache.
func NewCachedProvider(inner Provider, cache *Cache) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache}
}

// Name reports the inner provider's name.
func (p *CachedProvider) Name() string { return p.inner.Name() }

// Cache exposes the underlying cache for invalidation and stats.
func (p *CachedProvider) Cache() *Cache { return p.cache }

// Fetch returns the cached variant when present, otherwise fetches from the
// inner provider and stores the result.
func (p *CachedProvider) Fetch(ctx context.Context, level int, sourceText string) (*models.TextLevel, error) {
	key := CacheKey(Hash(sourceText), level)
	if lv, ok := p.cache.Get(key); ok {
		return lv, nil
	}
	lv, err := p.inner.Fetch(ctx, level, sourceText)
	if err != nil {
		return nil, err
	}
	p.cache.Put(key, lv)
	return lv, nil
}

// FallbackProvider tries providers in order and returns the first success.
// Used to prefer precomputed files or the external summarizer while keeping
// the local reducer as a last resort.
type FallbackProvider struct {
	providers []Provider
}

// NewFallbackProvider chains providers in priority order.
func NewFallbackProvider(providers ...Provider) *FallbackProvider {
	return &FallbackProvider{providers: providers}
}

// Name reports the chain's first provider name.
func (p *FallbackProvider) Name() string {
	if len(p.providers) == 0 {
		return "none"
	}
	return p.providers[0].Name()
}

// Fetch tries each provider in order. The last error is returned when all
// fail.
func (p *FallbackProvider) Fetch(ctx context.Context, level int, sourceText string) (*models.TextLevel, error) {
	var lastErr error
	for _, provider := range p.providers {
		lv, err := provider.Fetch(ctx, level, sourceText)
		if err == nil {
			return lv, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
