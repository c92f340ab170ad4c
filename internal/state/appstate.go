// Package state holds the explicitly owned application state and the level
// transition state machine. The state object is constructed once at startup
// and threaded through the gesture, fetch, and animation components; there
// are no package-level globals, so tests build fresh instances.
package state

import (
	"sync"

	"github.com/pinchlab/yoyak/internal/models"
)

// LevelChanged fires when the committed detail level moves.
type LevelChanged struct {
	Old int
	New int
}

// TextChanged fires when a level's text is stored or replaced.
type TextChanged struct {
	Level int
	Text  string
}

// AnimatingChanged fires when the animation busy flag flips.
type AnimatingChanged struct {
	Animating bool
}

// Anchor remembers the reader's place: a word and its relative offset in
// the viewport, used to restore scroll position after a swap.
type Anchor struct {
	Word   string
	Offset float64
}

// AppState is the session state: current level, per-level cached text,
// the animation busy flag, the viewport anchor, and a generic key/value
// cache. All mutation goes through setters, which notify the registered
// typed listeners.
type AppState struct {
	mu        sync.RWMutex
	level     int
	texts     map[int]*models.TextLevel
	animating bool
	anchor    Anchor
	kv        map[string]any

	levelListeners     []func(LevelChanged)
	textListeners      []func(TextChanged)
	animatingListeners []func(AnimatingChanged)
}

// NewAppState returns a fresh state at level 0 with no cached texts.
func NewAppState() *AppState {
	return &AppState{
		texts: make(map[int]*models.TextLevel),
		kv:    make(map[string]any),
	}
}

// OnLevelChanged registers a listener for level commits.
func (s *AppState) OnLevelChanged(fn func(LevelChanged)) {
	s.mu.Lock()
	s.levelListeners = append(s.levelListeners, fn)
	s.mu.Unlock()
}

// OnTextChanged registers a listener for text updates.
func (s *AppState) OnTextChanged(fn func(TextChanged)) {
	s.mu.Lock()
	s.textListeners = append(s.textListeners, fn)
	s.mu.Unlock()
}

// OnAnimatingChanged registers a listener for busy-flag changes.
func (s *AppState) OnAnimatingChanged(fn func(AnimatingChanged)) {
	s.mu.Lock()
	s.animatingListeners = append(s.animatingListeners, fn)
	s.mu.Unlock()
}

// Level returns the committed level.
func (s *AppState) Level() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// SetLevel commits a new level and notifies listeners.
func (s *AppState) SetLevel(level int) {
	s.mu.Lock()
	old := s.level
	s.level = level
	listeners := append([]func(LevelChanged){}, s.levelListeners...)
	s.mu.Unlock()
	if old == level {
		return
	}
	for _, fn := range listeners {
		fn(LevelChanged{Old: old, New: level})
	}
}

// TextFor returns the cached text for a level, if any.
func (s *AppState) TextFor(level int) (*models.TextLevel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lv, ok := s.texts[level]
	return lv, ok
}

// SetText caches a level's text and notifies listeners.
func (s *AppState) SetText(lv *models.TextLevel) {
	s.mu.Lock()
	s.texts[lv.Level] = lv
	listeners := append([]func(TextChanged){}, s.textListeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(TextChanged{Level: lv.Level, Text: lv.Content})
	}
}

// ClearTexts drops all cached level texts except level 0. Used when the
// source document changes.
func (s *AppState) ClearTexts() {
	s.mu.Lock()
	for level := range s.texts {
		if level != 0 {
			delete(s.texts, level)
		}
	}
	s.mu.Unlock()
}

// IsAnimating reports the busy flag.
func (s *AppState) IsAnimating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.animating
}

// SetAnimating flips the busy flag and notifies listeners on change.
func (s *AppState) SetAnimating(animating bool) {
	s.mu.Lock()
	changed := s.animating != animating
	s.animating = animating
	listeners := append([]func(AnimatingChanged){}, s.animatingListeners...)
	s.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(AnimatingChanged{Animating: animating})
	}
}

// ViewportAnchor returns the saved reading anchor.
func (s *AppState) ViewportAnchor() Anchor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.anchor
}

// SetViewportAnchor saves the reading anchor.
func (s *AppState) SetViewportAnchor(a Anchor) {
	s.mu.Lock()
	s.anchor = a
	s.mu.Unlock()
}

// Get reads from the generic cache.
func (s *AppState) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.kv[key]
	return v, ok
}

// Set writes to the generic cache.
func (s *AppState) Set(key string, value any) {
	s.mu.Lock()
	s.kv[key] = value
	s.mu.Unlock()
}
