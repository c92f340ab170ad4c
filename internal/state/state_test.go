package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pinchlab/yoyak/internal/diff"
	"github.com/pinchlab/yoyak/internal/levels"
	"github.com/pinchlab/yoyak/internal/models"
	"github.com/pinchlab/yoyak/internal/textstruct"
	"github.com/pinchlab/yoyak/internal/tfidf"
)

const machineText = `The tall lighthouse guided weary sailors through dangerous rocky waters.
Its bright beam swept the dark horizon every night without fail.

Local keepers maintained the ancient lamp for seven generations.
Their logbooks recorded every storm and every rescued crew.`

func TestAppState_LevelObserver(t *testing.T) {
	s := NewAppState()
	var got []LevelChanged
	s.OnLevelChanged(func(e LevelChanged) { got = append(got, e) })

	s.SetLevel(2)
	s.SetLevel(2) // no change, no event
	s.SetLevel(0)

	want := []LevelChanged{{Old: 0, New: 2}, {Old: 2, New: 0}}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAppState_TextAndAnimatingObservers(t *testing.T) {
	s := NewAppState()
	var texts []TextChanged
	var flags []bool
	s.OnTextChanged(func(e TextChanged) { texts = append(texts, e) })
	s.OnAnimatingChanged(func(e AnimatingChanged) { flags = append(flags, e.Animating) })

	s.SetText(&models.TextLevel{Level: 1, Content: "short"})
	s.SetAnimating(true)
	s.SetAnimating(true) // no change
	s.SetAnimating(false)

	if len(texts) != 1 || texts[0].Level != 1 || texts[0].Text != "short" {
		t.Errorf("text events = %v", texts)
	}
	if len(flags) != 2 || !flags[0] || flags[1] {
		t.Errorf("animating events = %v, want [true false]", flags)
	}
}

func TestAppState_ClearTextsKeepsSource(t *testing.T) {
	s := NewAppState()
	s.SetText(&models.TextLevel{Level: 0, Content: "source"})
	s.SetText(&models.TextLevel{Level: 1, Content: "shorter"})
	s.SetText(&models.TextLevel{Level: 2, Content: "shortest"})

	s.ClearTexts()

	if _, ok := s.TextFor(0); !ok {
		t.Error("level 0 was dropped")
	}
	for level := 1; level <= 3; level++ {
		if _, ok := s.TextFor(level); ok {
			t.Errorf("level %d survived ClearTexts", level)
		}
	}
}

func TestAppState_ViewportAnchor(t *testing.T) {
	s := NewAppState()
	s.SetViewportAnchor(Anchor{Word: "lighthouse", Offset: 0.4})
	if a := s.ViewportAnchor(); a.Word != "lighthouse" || a.Offset != 0.4 {
		t.Errorf("anchor = %v", a)
	}
}

// fakeAnimator records Animate calls and can be told to fail.
type fakeAnimator struct {
	mu      sync.Mutex
	calls   []*models.ProjectedDiff
	up      []bool
	err     error
	stopped bool
}

func (a *fakeAnimator) Animate(ctx context.Context, projected *models.ProjectedDiff, summarizing bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, projected)
	a.up = append(a.up, summarizing)
	return a.err
}

func (a *fakeAnimator) Stop() {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()
}

type erroringProvider struct{}

func (erroringProvider) Name() string { return "erroring" }

func (erroringProvider) Fetch(ctx context.Context, level int, sourceText string) (*models.TextLevel, error) {
	return nil, errors.New("backend unavailable")
}

func newTestMachine(anim Animator) (*Machine, *AppState) {
	app := NewAppState()
	provider := levels.NewReducerProvider(textstruct.NewStructurer(), tfidf.NewEngine())
	m := NewMachine(app, provider, diff.NewEngine(), anim, nil)
	m.Seed(machineText)
	return m, app
}

func TestMachine_TransitionCommitsLevel(t *testing.T) {
	anim := &fakeAnimator{}
	m, app := newTestMachine(anim)

	if err := m.RequestLevel(context.Background(), 2); err != nil {
		t.Fatalf("RequestLevel: %v", err)
	}
	if app.Level() != 2 {
		t.Errorf("level = %d, want 2", app.Level())
	}
	if _, ok := app.TextFor(2); !ok {
		t.Error("target text was not cached")
	}
	if len(anim.calls) != 1 || !anim.up[0] {
		t.Errorf("animator calls = %d (up=%v), want one summarizing call", len(anim.calls), anim.up)
	}
	if m.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle after commit", m.Phase())
	}
	if app.IsAnimating() {
		t.Error("animating flag stuck after transition")
	}
}

func TestMachine_DirectionFlag(t *testing.T) {
	anim := &fakeAnimator{}
	m, _ := newTestMachine(anim)
	ctx := context.Background()

	if err := m.RequestLevel(ctx, 3); err != nil {
		t.Fatal(err)
	}
	if err := m.RequestLevel(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if len(anim.up) != 2 || !anim.up[0] || anim.up[1] {
		t.Errorf("direction flags = %v, want [true false]", anim.up)
	}
}

func TestMachine_ProviderFailureAborts(t *testing.T) {
	app := NewAppState()
	m := NewMachine(app, erroringProvider{}, diff.NewEngine(), &fakeAnimator{}, nil)
	m.Seed(machineText)

	err := m.RequestLevel(context.Background(), 2)
	if err == nil {
		t.Fatal("expected provider error")
	}
	if app.Level() != 0 {
		t.Errorf("level = %d, want 0 after aborted transition", app.Level())
	}
	if m.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle after abort", m.Phase())
	}
}

func TestMachine_AnimationFailureStillSwaps(t *testing.T) {
	anim := &fakeAnimator{err: errors.New("frame drop")}
	m, app := newTestMachine(anim)

	if err := m.RequestLevel(context.Background(), 1); err != nil {
		t.Fatalf("RequestLevel: %v", err)
	}
	if app.Level() != 1 {
		t.Errorf("level = %d, want 1 despite animation failure", app.Level())
	}
}

func TestMachine_BusyRejectsConcurrentRequest(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	blocking := &blockingAnimator{started: started, release: release}
	m, _ := newTestMachine(blocking)

	done := make(chan error, 1)
	go func() { done <- m.RequestLevel(context.Background(), 2) }()
	<-started

	if err := m.RequestLevel(context.Background(), 3); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent request error = %v, want ErrBusy", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first request failed: %v", err)
	}
}

type blockingAnimator struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (a *blockingAnimator) Animate(ctx context.Context, projected *models.ProjectedDiff, summarizing bool) error {
	a.once.Do(func() { close(a.started) })
	<-a.release
	return nil
}

func (a *blockingAnimator) Stop() {}

func TestMachine_SameLevelIsNoOp(t *testing.T) {
	anim := &fakeAnimator{}
	m, _ := newTestMachine(anim)

	if err := m.RequestLevel(context.Background(), 0); err != nil {
		t.Fatalf("RequestLevel(0): %v", err)
	}
	if len(anim.calls) != 0 {
		t.Errorf("same-level request animated %d times", len(anim.calls))
	}
}

func TestMachine_InvalidLevel(t *testing.T) {
	m, _ := newTestMachine(&fakeAnimator{})
	if err := m.RequestLevel(context.Background(), 7); err == nil {
		t.Error("expected error for level 7")
	}
}

func TestMachine_Stats(t *testing.T) {
	m, _ := newTestMachine(&fakeAnimator{})
	ctx := context.Background()

	base, err := m.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if base.Level != 0 || base.CompressionRate != 1.0 {
		t.Errorf("base stats = %+v", base)
	}

	if err := m.RequestLevel(ctx, 2); err != nil {
		t.Fatal(err)
	}
	reduced, err := m.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if reduced.Level != 2 {
		t.Errorf("stats level = %d, want 2", reduced.Level)
	}
	if reduced.WordCount >= base.WordCount {
		t.Errorf("reduced word count %d not below base %d", reduced.WordCount, base.WordCount)
	}
	if reduced.CompressionRate >= 1.0 || reduced.CompressionRate <= 0 {
		t.Errorf("compression rate = %v, want in (0, 1)", reduced.CompressionRate)
	}
}
