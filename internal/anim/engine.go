package anim

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/pinchlab/yoyak/internal/models"
	"github.com/pinchlab/yoyak/pkg/utils"
)

// Config tunes the planner.
type Config struct {
	// LargeThreshold is the |added|+|kept| count above which sampling kicks in.
	LargeThreshold int
	// ViewportMargin extends the viewport on every side when filtering.
	ViewportMargin float64
	// Sampling rates for large transitions, per direction.
	OutAddedRate float64 // summarizing: added words
	OutKeptRate  float64 // summarizing: kept words
	InAddedRate  float64 // detailing: added words
	InKeptRate   float64 // detailing: kept words

	EntryDistance float64       // base fly-in distance for added words
	EntryDuration time.Duration // per-word fly-in time
	StaggerWindow time.Duration // base spread of fly-in start times
	MorphDuration time.Duration
	PulseScale    float64
	PulseOpacity  float64
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		LargeThreshold: 3000,
		ViewportMargin: 200,
		OutAddedRate:   1.0,
		OutKeptRate:    0.7,
		InAddedRate:    0.5,
		InKeptRate:     0.0,
		EntryDistance:  200,
		EntryDuration:  700 * time.Millisecond,
		StaggerWindow:  600 * time.Millisecond,
		MorphDuration:  150 * time.Millisecond,
		PulseScale:     1.03,
		PulseOpacity:   0.85,
	}
}

// Player executes a plan against a concrete renderer and clears the
// per-word style overrides afterward. Play blocks until the plan finishes,
// the context is done, or Stop is called.
type Player interface {
	Play(ctx context.Context, plan *Plan) error
	Stop()
}

// NopPlayer discards plans immediately. Used headless and in tests.
type NopPlayer struct{}

func (NopPlayer) Play(ctx context.Context, plan *Plan) error { return ctx.Err() }
func (NopPlayer) Stop()                                      {}

// Engine builds animation plans from projected diffs and plays them.
type Engine struct {
	cfg    Config
	rng    *rand.Rand
	layout Layout
	player Player
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the randomness source, making plans reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLayout supplies rendered geometry for viewport filtering and
// top-to-bottom stagger ordering. Without one, every word is eligible and
// stagger follows token order.
func WithLayout(l Layout) Option {
	return func(e *Engine) { e.layout = l }
}

// WithPlayer overrides the plan executor.
func WithPlayer(p Player) Option {
	return func(e *Engine) { e.player = p }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine with the given tuning.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		player: NopPlayer{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Animate plans and plays the transition. summarizing is true when moving
// to a higher level (words leave), false when restoring detail (words
// return).
func (e *Engine) Animate(ctx context.Context, projected *models.ProjectedDiff, summarizing bool) error {
	plan := e.Plan(projected, summarizing)
	e.logger.Debug("animation plan built",
		zap.Int("steps", len(plan.Steps)),
		zap.Int("words", plan.AnimatedWordCount()),
		zap.Duration("total", plan.Total),
	)
	return e.player.Play(ctx, plan)
}

// Stop kills any in-flight playback.
func (e *Engine) Stop() {
	e.player.Stop()
}

// Plan builds the declarative step list for one transition.
func (e *Engine) Plan(projected *models.ProjectedDiff, summarizing bool) *Plan {
	plan := &Plan{}

	total := len(projected.Added) + len(projected.Kept) + len(projected.Removed)
	multiplier := utils.Clamp(float64(total)/100, 0.3, 1.0)
	stagger := time.Duration(float64(e.cfg.StaggerWindow) * multiplier)

	large := len(projected.Added)+len(projected.Kept) >= e.cfg.LargeThreshold
	addedRate, keptRate := 1.0, 1.0
	if large {
		if summarizing {
			addedRate, keptRate = e.cfg.OutAddedRate, e.cfg.OutKeptRate
		} else {
			addedRate, keptRate = e.cfg.InAddedRate, e.cfg.InKeptRate
		}
	}

	added := e.sample(e.visible(projected.Added, TargetWords), addedRate)
	e.planAdded(plan, added, stagger)

	if summarizing {
		kept := e.sample(e.visible(projected.Kept, TargetWords), keptRate)
		e.planKeptPulse(plan, kept, stagger)
	}

	if len(projected.Removed) > 0 {
		e.planContainerDip(plan)
	}

	e.planMorphs(plan, projected.Morphed)

	plan.finalize()
	return plan
}

// visible filters refs to those whose rendered box intersects the expanded
// viewport. Without a layout every ref passes.
func (e *Engine) visible(refs []models.WordRef, kind TargetKind) []models.WordRef {
	if e.layout == nil {
		return refs
	}
	view := e.layout.Viewport().Expand(e.cfg.ViewportMargin)
	out := make([]models.WordRef, 0, len(refs))
	for _, ref := range refs {
		box, ok := e.box(kind, ref.Index)
		if ok && box.Intersects(view) {
			out = append(out, ref)
		}
	}
	return out
}

func (e *Engine) box(kind TargetKind, index int) (Rect, bool) {
	if kind == SourceWords {
		return e.layout.SourceBox(index)
	}
	return e.layout.TargetBox(index)
}

// sample keeps each ref independently with probability rate.
func (e *Engine) sample(refs []models.WordRef, rate float64) []models.WordRef {
	if rate >= 1.0 {
		return refs
	}
	if rate <= 0 {
		return nil
	}
	out := make([]models.WordRef, 0, int(float64(len(refs))*rate)+1)
	for _, ref := range refs {
		if e.rng.Float64() < rate {
			out = append(out, ref)
		}
	}
	return out
}

// entryCorners are the four diagonal fly-in directions, unit-ish vectors.
var entryCorners = [4][2]float64{
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// planAdded adds one fly-in step per added word, staggered in top-to-bottom
// rendering order across the stagger window.
func (e *Engine) planAdded(plan *Plan, refs []models.WordRef, stagger time.Duration) {
	if len(refs) == 0 {
		return
	}
	ordered := e.renderOrder(refs)
	norm := 1 / math.Sqrt2
	for i, ref := range ordered {
		corner := entryCorners[e.rng.Intn(len(entryCorners))]
		distance := e.cfg.EntryDistance * (1.0 + e.rng.Float64()*0.25)
		var delay time.Duration
		if len(ordered) > 1 {
			delay = time.Duration(float64(stagger) * float64(i) / float64(len(ordered)-1))
		}
		plan.Steps = append(plan.Steps, Step{
			Kind:    TargetWords,
			Targets: []int{ref.Index},
			From: VisualState{
				Opacity: 0.05,
				Scale:   0.3,
				Blur:    4,
				DX:      corner[0] * distance * norm,
				DY:      corner[1] * distance * norm,
			},
			To:       Baseline(),
			Duration: e.cfg.EntryDuration,
			Delay:    delay,
			Easing:   EaseOvershoot,
		})
	}
}

// planKeptPulse adds a single pulse step covering all sampled kept words.
func (e *Engine) planKeptPulse(plan *Plan, refs []models.WordRef, stagger time.Duration) {
	if len(refs) == 0 {
		return
	}
	targets := make([]int, len(refs))
	for i, ref := range refs {
		targets[i] = ref.Index
	}
	sort.Ints(targets)
	plan.Steps = append(plan.Steps, Step{
		Kind:    TargetWords,
		Targets: targets,
		From:    Baseline(),
		To: VisualState{
			Opacity: e.cfg.PulseOpacity,
			Scale:   e.cfg.PulseScale,
		},
		Duration: stagger / 2,
		Easing:   EasePulse,
	})
}

// planContainerDip fades the whole container partially out and back. Removed
// words no longer exist in the rendered target text, so this stands in for
// per-word exit animation.
func (e *Engine) planContainerDip(plan *Plan) {
	plan.Steps = append(plan.Steps, Step{
		Kind: WholeContainer,
		From: Baseline(),
		To: VisualState{
			Opacity: 0.6,
			Scale:   1,
		},
		Duration: 250 * time.Millisecond,
		Easing:   EaseDip,
	})
}

// planMorphs rotates each source word out and its target in, overlapping.
func (e *Engine) planMorphs(plan *Plan, morphs []models.MorphRef) {
	for _, m := range morphs {
		plan.Steps = append(plan.Steps,
			Step{
				Kind:     SourceWords,
				Targets:  []int{m.Source.Index},
				From:     Baseline(),
				To:       VisualState{Opacity: 0, Scale: 1, Rotate: 90},
				Duration: e.cfg.MorphDuration,
				Easing:   EaseLinear,
			},
			Step{
				Kind:     TargetWords,
				Targets:  []int{m.Target.Index},
				From:     VisualState{Opacity: 0, Scale: 1, Rotate: -90},
				To:       Baseline(),
				Duration: e.cfg.MorphDuration,
				Easing:   EaseLinear,
			},
		)
	}
}

// renderOrder sorts refs top-to-bottom (then left-to-right) when geometry is
// available, otherwise by token index.
func (e *Engine) renderOrder(refs []models.WordRef) []models.WordRef {
	out := append([]models.WordRef(nil), refs...)
	sort.SliceStable(out, func(i, j int) bool {
		if e.layout != nil {
			bi, oki := e.layout.TargetBox(out[i].Index)
			bj, okj := e.layout.TargetBox(out[j].Index)
			if oki && okj {
				if bi.Y != bj.Y {
					return bi.Y < bj.Y
				}
				return bi.X < bj.X
			}
		}
		return out[i].Index < out[j].Index
	})
	return out
}
