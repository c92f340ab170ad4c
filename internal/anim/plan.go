// Package anim turns a projected transition diff into a declarative
// animation plan and hands it to a pluggable player. Planning is pure data
// work and fully testable; rendering is the player's problem.
package anim

import "time"

// Easing names the curve a player applies to a step.
type Easing string

const (
	EaseLinear    Easing = "linear"
	EaseOvershoot Easing = "overshoot" // enters past the target then settles
	EasePulse     Easing = "pulse"     // to the target state and back to baseline
	EaseDip       Easing = "dip"       // fades partially out and back
)

// VisualState is the animatable property set of a word element. DX and DY
// are offsets in pixels from the word's resting position.
type VisualState struct {
	Opacity float64 `json:"opacity"`
	Scale   float64 `json:"scale"`
	Rotate  float64 `json:"rotate"` // degrees
	Blur    float64 `json:"blur"`   // pixels
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
}

// Baseline is the resting visual state.
func Baseline() VisualState {
	return VisualState{Opacity: 1, Scale: 1}
}

// TargetKind says which rendered token list a step's indices refer to.
type TargetKind string

const (
	TargetWords    TargetKind = "target_words" // indices into the target token list
	SourceWords    TargetKind = "source_words" // indices into the source token list
	WholeContainer TargetKind = "container"    // the text container itself
)

// Step is one animation instruction: move the targets from one visual state
// to another over a duration, after a delay.
type Step struct {
	Kind     TargetKind    `json:"kind"`
	Targets  []int         `json:"targets,omitempty"`
	From     VisualState   `json:"from"`
	To       VisualState   `json:"to"`
	Duration time.Duration `json:"duration"`
	Delay    time.Duration `json:"delay"`
	Easing   Easing        `json:"easing"`
}

// Plan is the full instruction list for one transition. Steps may overlap
// in time; Total is the wall-clock span of the whole plan.
type Plan struct {
	Steps []Step        `json:"steps"`
	Total time.Duration `json:"total"`
}

// AnimatedWordCount returns how many individual word elements the plan
// touches, excluding container-level steps.
func (p *Plan) AnimatedWordCount() int {
	n := 0
	for _, s := range p.Steps {
		if s.Kind != WholeContainer {
			n += len(s.Targets)
		}
	}
	return n
}

func (p *Plan) finalize() {
	var total time.Duration
	for _, s := range p.Steps {
		if end := s.Delay + s.Duration; end > total {
			total = end
		}
	}
	p.Total = total
}

// Rect is an axis-aligned box in page coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Intersects reports whether two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Expand grows the rect by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Layout exposes rendered word geometry to the planner. TargetBox and
// SourceBox return the bounding box of a token by its index in the
// respective rendered token list; ok is false for words with no box yet.
type Layout interface {
	TargetBox(index int) (Rect, bool)
	SourceBox(index int) (Rect, bool)
	Viewport() Rect
}
