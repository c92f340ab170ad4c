// Package gesture converts continuous pinch input and discrete desktop
// controls into detail-level change requests. A two-pointer pinch maps
// inter-pointer distance to a continuous level value which is thresholded
// and debounced before committing; buttons, slider, keyboard, and ctrl+wheel
// map directly with a cooldown guard. Inputs arriving while a transition is
// animating are dropped, never queued.
package gesture

import (
	"math"
	"sync"
	"time"

	"github.com/pinchlab/yoyak/internal/models"
)

// State is the controller's interaction state.
type State string

const (
	StateIdle     State = "idle"
	StatePinching State = "pinching"
	StateCooldown State = "cooldown"
)

// Config holds gesture tuning parameters.
type Config struct {
	MinScale  float64       // pinch scale floor (most summarized)
	MaxScale  float64       // pinch scale ceiling (most detailed)
	Threshold float64       // minimum |rawLevel - currentLevel| to commit
	Debounce  time.Duration // pinch settle time before a commit fires
	Cooldown  time.Duration // minimum gap between button-driven changes
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		MinScale:  0.5,
		MaxScale:  2.0,
		Threshold: 0.15,
		Debounce:  100 * time.Millisecond,
		Cooldown:  300 * time.Millisecond,
	}
}

// Pointer is one active touch point.
type Pointer struct {
	ID   int
	X, Y float64
}

// Controller turns input events into level commits. Commits are delivered
// through the onLevel callback; the busy gate suppresses input while an
// animation is in flight.
type Controller struct {
	mu  sync.Mutex
	cfg Config

	level    int
	pointers map[int]Pointer

	pinchActive     bool
	initialDistance float64
	rawLevel        float64
	debounceTimer   *time.Timer

	lastButton time.Time

	busy    func() bool
	onLevel func(level int)
}

// NewController creates a Controller starting at level 0. busy reports
// whether a transition animation is in flight; onLevel receives committed
// level changes. Both may be nil.
func NewController(cfg Config, busy func() bool, onLevel func(int)) *Controller {
	if cfg.MaxScale <= cfg.MinScale {
		cfg = DefaultConfig()
	}
	return &Controller{
		cfg:      cfg,
		pointers: make(map[int]Pointer),
		busy:     busy,
		onLevel:  onLevel,
	}
}

// Level returns the current committed level.
func (c *Controller) Level() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// State returns the current interaction state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.pinchActive:
		return StatePinching
	case !c.lastButton.IsZero() && time.Since(c.lastButton) < c.cfg.Cooldown:
		return StateCooldown
	default:
		return StateIdle
	}
}

// ScaleToLevel maps a clamped pinch scale to the continuous level value:
// MaxScale (fingers spread) is level 0, MinScale (fingers together) is
// level 3.
func (c *Controller) ScaleToLevel(scale float64) float64 {
	scale = math.Max(c.cfg.MinScale, math.Min(c.cfg.MaxScale, scale))
	normalized := (scale - c.cfg.MinScale) / (c.cfg.MaxScale - c.cfg.MinScale)
	return float64(models.MaxLevel) * (1 - normalized)
}

// PointerDown registers a pointer. The second concurrent pointer starts a
// pinch, capturing the initial distance and the level in effect.
func (c *Controller) PointerDown(p Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pointers[p.ID] = p
	if len(c.pointers) == 2 && !c.pinchActive {
		c.pinchActive = true
		c.initialDistance = c.pointerDistanceLocked()
		c.rawLevel = float64(c.level)
	}
}

// PointerMove updates a pointer. With two active pointers the pinch scale
// is recomputed; a commit is scheduled only when the continuous level moved
// at least Threshold away from the current level, and only after Debounce
// with no further movement. Every move resets the pending timer.
func (c *Controller) PointerMove(p Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pointers[p.ID]; !ok {
		return
	}
	c.pointers[p.ID] = p
	if !c.pinchActive || len(c.pointers) != 2 || c.initialDistance <= 0 {
		return
	}
	scale := c.pointerDistanceLocked() / c.initialDistance
	c.rawLevel = c.ScaleToLevel(scale)

	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	if math.Abs(c.rawLevel-float64(c.level)) < c.cfg.Threshold {
		return
	}
	target := clampLevel(int(math.Round(c.rawLevel)))
	c.debounceTimer = time.AfterFunc(c.cfg.Debounce, func() {
		c.commit(target)
	})
}

// PointerUp removes a pointer. Dropping below two active pointers resets
// the pinch immediately and clears any pending debounce.
func (c *Controller) PointerUp(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pointers, id)
	if len(c.pointers) < 2 {
		c.resetPinchLocked()
	}
}

// PointerCancel behaves like PointerUp.
func (c *Controller) PointerCancel(id int) {
	c.PointerUp(id)
}

// Increase raises the level by one (more summarized), saturating at the
// maximum. Returns whether a change committed.
func (c *Controller) Increase() bool { return c.step(1) }

// Decrease lowers the level by one (more detail), saturating at zero.
func (c *Controller) Decrease() bool { return c.step(-1) }

func (c *Controller) step(delta int) bool {
	c.mu.Lock()
	if !c.lastButton.IsZero() && time.Since(c.lastButton) < c.cfg.Cooldown {
		c.mu.Unlock()
		return false
	}
	target := clampLevel(c.level + delta)
	c.lastButton = time.Now()
	c.mu.Unlock()
	return c.commit(target)
}

// SetLevel requests an absolute level (slider, number keys). No cooldown
// applies; the busy gate still does.
func (c *Controller) SetLevel(level int) bool {
	return c.commit(clampLevel(level))
}

// Wheel handles ctrl+wheel zoom: a positive delta (scrolling down)
// summarizes further, a negative delta restores detail. Non-ctrl wheel
// events are ignored.
func (c *Controller) Wheel(delta float64, ctrl bool) bool {
	if !ctrl || delta == 0 {
		return false
	}
	c.mu.Lock()
	target := c.level
	if delta > 0 {
		target++
	} else {
		target--
	}
	c.mu.Unlock()
	return c.commit(clampLevel(target))
}

// KeyPress handles keyboard shortcuts: digits 0-3 set an absolute level,
// "+"/"=" summarize further, "-" restores detail.
func (c *Controller) KeyPress(key string) bool {
	switch key {
	case "0", "1", "2", "3":
		return c.SetLevel(int(key[0] - '0'))
	case "+", "=":
		c.mu.Lock()
		target := c.level + 1
		c.mu.Unlock()
		return c.commit(clampLevel(target))
	case "-":
		c.mu.Lock()
		target := c.level - 1
		c.mu.Unlock()
		return c.commit(clampLevel(target))
	default:
		return false
	}
}

// commit applies a level change unless the busy gate is up or the level is
// unchanged. Returns whether a change was applied.
func (c *Controller) commit(target int) bool {
	if c.busy != nil && c.busy() {
		return false
	}
	c.mu.Lock()
	if target == c.level {
		c.mu.Unlock()
		return false
	}
	c.level = target
	onLevel := c.onLevel
	c.mu.Unlock()
	if onLevel != nil {
		onLevel(target)
	}
	return true
}

func (c *Controller) resetPinchLocked() {
	c.pinchActive = false
	c.initialDistance = 0
	c.rawLevel = float64(c.level)
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
}

// pointerDistanceLocked returns the distance between the two active
// pointers. Caller holds the mutex and guarantees len(pointers) == 2.
func (c *Controller) pointerDistanceLocked() float64 {
	pts := make([]Pointer, 0, 2)
	for _, p := range c.pointers {
		pts = append(pts, p)
	}
	dx := pts[0].X - pts[1].X
	dy := pts[0].Y - pts[1].Y
	return math.Hypot(dx, dy)
}

func clampLevel(level int) int {
	if level < models.MinLevel {
		return models.MinLevel
	}
	if level > models.MaxLevel {
		return models.MaxLevel
	}
	return level
}
