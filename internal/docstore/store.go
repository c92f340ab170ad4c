// Package docstore is the in-memory document registry: it ingests raw text
// or files, normalizes them, and serves their detail variants through the
// level cache. Nothing is persisted; the registry lives for the process.
package docstore

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinchlab/yoyak/internal/extract"
	"github.com/pinchlab/yoyak/internal/levels"
	"github.com/pinchlab/yoyak/internal/models"
	"github.com/pinchlab/yoyak/internal/textstruct"
)

// ErrNotFound is returned for unknown document ids.
var ErrNotFound = fmt.Errorf("document not found")

// Stats is a snapshot of the registry.
type Stats struct {
	Documents    int     `json:"documents"`
	CachedLevels int     `json:"cached_levels"`
	CacheHitRate float64 `json:"cache_hit_rate"`
}

// Store registers documents and serves their level variants.
type Store struct {
	mu     sync.RWMutex
	docs   map[string]*models.Document
	byPath map[string]string // source path -> document id

	extractor *extract.Extractor
	provider  levels.Provider
	cache     *levels.Cache
	logger    *zap.Logger
}

// New creates a Store backed by the given level provider.
func New(provider levels.Provider, cache *levels.Cache, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = levels.NewCache()
	}
	return &Store{
		docs:      make(map[string]*models.Document),
		byPath:    make(map[string]string),
		extractor: extract.NewExtractor(),
		provider:  provider,
		cache:     cache,
		logger:    logger,
	}
}

// Add registers a document from raw content. The content is normalized
// before hashing, so whitespace-only differences map to the same hash.
// A provided id replaces any existing document with that id.
func (s *Store) Add(input models.DocumentInput) (*models.Document, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	content := textstruct.Normalize(input.Content)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is empty after normalization")
	}

	now := time.Now().UTC()
	doc := &models.Document{
		ID:        input.ID,
		Title:     input.Title,
		Content:   content,
		Hash:      levels.Hash(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.Title == "" {
		doc.Title = firstWords(content, 8)
	}

	s.mu.Lock()
	if prev, ok := s.docs[doc.ID]; ok {
		doc.CreatedAt = prev.CreatedAt
		if prev.Hash != doc.Hash {
			s.cache.DeletePrefix(prev.Hash + ":")
		}
		doc.Source = prev.Source
	}
	s.docs[doc.ID] = doc
	s.mu.Unlock()

	s.logger.Info("document registered",
		zap.String("id", doc.ID),
		zap.String("hash", doc.Hash),
		zap.Int("bytes", len(doc.Content)),
	)
	return doc, nil
}

// AddFile ingests a document file, extracting its text by format. Re-adding
// the same path updates the existing document in place and invalidates its
// cached levels when the content changed.
func (s *Store) AddFile(path string) (*models.Document, error) {
	text, err := s.extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", path, err)
	}

	s.mu.RLock()
	id := s.byPath[path]
	s.mu.RUnlock()

	doc, err := s.Add(models.DocumentInput{
		ID:      id,
		Title:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Content: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", path, err)
	}

	s.mu.Lock()
	doc.Source = path
	s.byPath[path] = doc.ID
	s.mu.Unlock()
	return doc, nil
}

// Get returns the document with the given id.
func (s *Store) Get(id string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// GetByPath returns the document ingested from the given file path.
func (s *Store) GetByPath(path string) (*models.Document, error) {
	s.mu.RLock()
	id, ok := s.byPath[path]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.Get(id)
}

// List returns all documents ordered by creation time, oldest first.
func (s *Store) List() []*models.Document {
	s.mu.RLock()
	out := make([]*models.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Delete removes a document and every cached level derived from it.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	doc, ok := s.docs[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.docs, id)
	if doc.Source != "" {
		delete(s.byPath, doc.Source)
	}
	s.mu.Unlock()

	n := s.cache.DeletePrefix(doc.Hash + ":")
	s.logger.Info("document removed",
		zap.String("id", id),
		zap.Int("levels_invalidated", n),
	)
	return nil
}

// RemovePath drops the document ingested from path, if any.
func (s *Store) RemovePath(path string) error {
	s.mu.RLock()
	id, ok := s.byPath[path]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return s.Delete(id)
}

// Level returns one detail variant of a document, computing and caching it
// on first request.
func (s *Store) Level(ctx context.Context, id string, level int) (*models.TextLevel, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !models.ValidLevel(level) {
		return nil, fmt.Errorf("invalid level %d", level)
	}

	key := levels.CacheKey(doc.Hash, level)
	if lv, ok := s.cache.Get(key); ok {
		return lv, nil
	}
	lv, err := s.provider.Fetch(ctx, level, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("level %d of %s: %w", level, id, err)
	}
	s.cache.Put(key, lv)
	return lv, nil
}

// Stats returns a registry snapshot.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	docs := len(s.docs)
	s.mu.RUnlock()
	return Stats{
		Documents:    docs,
		CachedLevels: s.cache.Len(),
		CacheHitRate: s.cache.HitRate(),
	}
}

// firstWords returns the first n whitespace tokens of text, joined.
func firstWords(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
