// Package levels manages the four detail variants of a document: fetching
// them from a summary provider (precomputed files, an external HTTP
// summarizer, or a local priority-based reducer) and caching them for the
// process lifetime keyed by content hash.
package levels

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/pinchlab/yoyak/internal/models"
)

// Provider produces one detail variant of a source text. Implementations
// must be safe for concurrent use; fetch failures are surfaced to the
// caller, never retried here.
type Provider interface {
	Fetch(ctx context.Context, level int, sourceText string) (*models.TextLevel, error)
	Name() string
}

// Hash returns the cache key prefix for a source text: the first 16 hex
// characters of its SHA-256.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:16]
}

// CacheKey builds the level-cache key for a text hash and level.
func CacheKey(hash string, level int) string {
	return fmt.Sprintf("%s:%d", hash, level)
}
