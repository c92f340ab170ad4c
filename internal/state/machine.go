package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pinchlab/yoyak/internal/diff"
	"github.com/pinchlab/yoyak/internal/levels"
	"github.com/pinchlab/yoyak/internal/models"
	"github.com/pinchlab/yoyak/internal/textstruct"
)

// Phase is the machine's transition phase.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseFetchingText  Phase = "fetching_text"
	PhaseTransitioning Phase = "transitioning"
)

// ErrBusy is returned when a level request arrives while a transition is
// already in flight. Callers drop the request; nothing is queued.
var ErrBusy = errors.New("transition already in flight")

// Animator plays a transition. Implementations report completion through
// the returned error; the machine degrades to a plain swap on failure.
type Animator interface {
	Animate(ctx context.Context, projected *models.ProjectedDiff, summarizing bool) error
	Stop()
}

// Stats summarizes the currently displayed text.
type Stats struct {
	Level           int     `json:"level"`
	WordCount       int     `json:"word_count"`
	SentenceCount   int     `json:"sentence_count"`
	CompressionRate float64 `json:"compression_rate"` // vs level-0 word count
}

// Machine orchestrates level transitions for one document: fetch the target
// text if missing, diff it against the displayed text, animate, then
// commit. At most one transition runs at a time; requests arriving while
// busy fail with ErrBusy.
type Machine struct {
	mu    sync.Mutex
	phase Phase

	app        *AppState
	provider   levels.Provider
	differ     *diff.Engine
	animator   Animator
	structurer *textstruct.Structurer
	logger     *zap.Logger
}

// NewMachine creates a Machine. The AppState must already hold the level-0
// text (see Seed). animator may be nil, in which case transitions swap
// without animation.
func NewMachine(app *AppState, provider levels.Provider, differ *diff.Engine, animator Animator, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		phase:      PhaseIdle,
		app:        app,
		provider:   provider,
		differ:     differ,
		animator:   animator,
		structurer: textstruct.NewStructurer(),
		logger:     logger,
	}
}

// Seed stores the level-0 source text and resets the committed level.
func (m *Machine) Seed(sourceText string) {
	st := m.structurer.Structure(sourceText)
	m.app.SetText(&models.TextLevel{
		Level:   0,
		Content: st.Text,
		Metadata: models.LevelMetadata{
			CompressionRate: 1.0,
			WordCount:       len(st.Words),
			SentenceCount:   st.SentenceCount,
		},
	})
	m.app.SetLevel(0)
}

// Phase returns the current transition phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Busy reports whether a transition is in flight.
func (m *Machine) Busy() bool {
	return m.Phase() != PhaseIdle
}

// RequestLevel drives one full transition to target. On provider failure
// the machine returns to idle at the prior level and the error is surfaced;
// on diff or animation failure the text still swaps, without animation.
func (m *Machine) RequestLevel(ctx context.Context, target int) error {
	if !models.ValidLevel(target) {
		return fmt.Errorf("invalid level %d", target)
	}

	m.mu.Lock()
	if m.phase != PhaseIdle {
		m.mu.Unlock()
		return ErrBusy
	}
	m.phase = PhaseFetchingText
	m.mu.Unlock()

	current := m.app.Level()
	if target == current {
		m.setPhase(PhaseIdle)
		return nil
	}

	targetText, err := m.ensureText(ctx, target)
	if err != nil {
		// Abort: prior level stays committed, nothing half-switched.
		m.setPhase(PhaseIdle)
		return fmt.Errorf("fetch level %d: %w", target, err)
	}

	m.setPhase(PhaseTransitioning)
	m.app.SetAnimating(true)
	defer func() {
		m.app.SetAnimating(false)
		m.setPhase(PhaseIdle)
	}()

	fromLevel, ok := m.app.TextFor(current)
	if ok && m.animator != nil {
		m.animate(ctx, fromLevel.Content, targetText.Content, target > current)
	}

	old := current
	m.app.SetLevel(target)
	m.logger.Debug("level committed",
		zap.Int("from", old),
		zap.Int("to", target),
		zap.Int("words", targetText.Metadata.WordCount),
	)
	return nil
}

// ensureText returns the cached text for level or fetches and caches it.
func (m *Machine) ensureText(ctx context.Context, level int) (*models.TextLevel, error) {
	if lv, ok := m.app.TextFor(level); ok {
		return lv, nil
	}
	source, ok := m.app.TextFor(0)
	if !ok {
		return nil, fmt.Errorf("no source text seeded")
	}
	lv, err := m.provider.Fetch(ctx, level, source.Content)
	if err != nil {
		return nil, err
	}
	m.app.SetText(lv)
	return lv, nil
}

// animate computes the projected diff and plays it. Failures degrade to an
// immediate swap: showing the right text outranks animation fidelity.
func (m *Machine) animate(ctx context.Context, fromText, toText string, summarizing bool) {
	d := m.differ.Diff(fromText, toText)
	projected := diff.ProjectDiff(d, diff.Tokenize(fromText), diff.Tokenize(toText))
	if err := m.animator.Animate(ctx, projected, summarizing); err != nil {
		m.logger.Warn("animation failed, swapping without animation", zap.Error(err))
	}
}

// Stop cancels any in-flight animation and forces the busy flag down. Used
// on teardown; no visual cleanup is guaranteed.
func (m *Machine) Stop() {
	if m.animator != nil {
		m.animator.Stop()
	}
	m.app.SetAnimating(false)
	m.setPhase(PhaseIdle)
}

// Stats recomputes display statistics for the committed level.
func (m *Machine) Stats() (Stats, error) {
	level := m.app.Level()
	lv, ok := m.app.TextFor(level)
	if !ok {
		return Stats{}, fmt.Errorf("no text for level %d", level)
	}
	st := m.structurer.Structure(lv.Content)
	stats := Stats{
		Level:         level,
		WordCount:     len(st.Words),
		SentenceCount: st.SentenceCount,
	}
	if source, ok := m.app.TextFor(0); ok {
		if srcWords := m.structurer.Structure(source.Content).Words; len(srcWords) > 0 {
			stats.CompressionRate = float64(stats.WordCount) / float64(len(srcWords))
		}
	}
	return stats, nil
}

func (m *Machine) setPhase(p Phase) {
	m.mu.Lock()
	m.phase = p
	m.mu.Unlock()
}
