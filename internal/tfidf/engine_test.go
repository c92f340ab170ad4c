package tfidf

import (
	"strings"
	"testing"

	"github.com/pinchlab/yoyak/internal/textstruct"
)

func structure(t *testing.T, text string) *textstruct.Structured {
	t.Helper()
	return textstruct.NewStructurer().Structure(text)
}

func TestEngine_Score_ParagraphDispersion(t *testing.T) {
	// "kernel" appears only in the first paragraph; "system" appears in both.
	// The concentrated word must outscore the dispersed one.
	text := "The kernel schedules system tasks. The kernel owns memory.\n\n" +
		"The system boots. The system runs tasks."
	e := NewEngine()
	scores := e.Score(structure(t, text))

	kernel, ok := scores.Raw["kernel"]
	if !ok {
		t.Fatal("expected score for 'kernel'")
	}
	system := scores.Raw["system"]
	if kernel <= system {
		t.Errorf("kernel (%v) should outscore system (%v)", kernel, system)
	}
	// "system" is in every paragraph: IDF = ln(2/2) = 0.
	if system != 0 {
		t.Errorf("system score = %v, want 0 (appears in all paragraphs)", system)
	}
}

func TestEngine_Score_NormalizedRange(t *testing.T) {
	text := "Alpha beta gamma delta.\n\nAlpha epsilon zeta.\n\nAlpha eta theta."
	scores := NewEngine().Score(structure(t, text))
	for word, v := range scores.Normalized {
		if v < 0 || v > 1 {
			t.Errorf("normalized score for %q = %v, out of [0,1]", word, v)
		}
	}
}

func TestEngine_Score_DegenerateMidpoint(t *testing.T) {
	// Single paragraph: every word has IDF ln(1/1) = 0, so all raw scores are
	// equal and normalization must pin everything at 0.5.
	scores := NewEngine().Score(structure(t, "unique distinct words only here."))
	if len(scores.Normalized) == 0 {
		t.Fatal("expected candidates")
	}
	for word, v := range scores.Normalized {
		if v != 0.5 {
			t.Errorf("normalized score for %q = %v, want 0.5", word, v)
		}
	}
}

func TestEngine_Score_EmptyInput(t *testing.T) {
	scores := NewEngine().Score(structure(t, ""))
	if len(scores.Raw) != 0 {
		t.Errorf("empty input produced %d scores", len(scores.Raw))
	}
}

func TestEngine_Filters(t *testing.T) {
	text := "The a an robot builds.\n\nA robot dreams."
	scores := NewEngine().Score(structure(t, text))
	for _, stop := range []string{"the", "a", "an"} {
		if _, ok := scores.Raw[stop]; ok {
			t.Errorf("stop word %q was scored", stop)
		}
	}
	if _, ok := scores.Raw["robot"]; !ok {
		t.Error("expected 'robot' to be scored")
	}
}

func TestEngine_ExtraStopWords(t *testing.T) {
	e := NewEngine(WithExtraStopWords([]string{"robot"}))
	scores := e.Score(structure(t, "Robot builds robots.\n\nRobot dreams."))
	if _, ok := scores.Raw["robot"]; ok {
		t.Error("extra stop word 'robot' was scored")
	}
}

func TestScores_TopN(t *testing.T) {
	text := "Quantum computing changes cryptography forever.\n\n" +
		"Classical computing remains useful. Quantum effects dominate.\n\n" +
		"Cryptography adapts slowly."
	scores := NewEngine().Score(structure(t, text))

	top := scores.TopN(3)
	if len(top) != 3 {
		t.Fatalf("TopN(3) returned %d keywords", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Errorf("TopN not descending at %d: %v after %v", i, top[i], top[i-1])
		}
	}

	all := scores.TopN(len(scores.Raw) + 10)
	if len(all) != len(scores.Raw) {
		t.Errorf("TopN over-cap returned %d, want %d", len(all), len(scores.Raw))
	}

	half := scores.TopPercent(0.5)
	if len(half) == 0 || len(half) > len(all) {
		t.Errorf("TopPercent(0.5) returned %d of %d", len(half), len(all))
	}
}

func TestCleanToken(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Fox,", "fox"},
		{`"quoted"`, "quoted"},
		{"plain", "plain"},
		{"...", ""},
		{"UPPER", "upper"},
	}
	for _, tt := range tests {
		if got := CleanToken(tt.in); got != tt.want {
			t.Errorf("CleanToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScores_Annotate(t *testing.T) {
	st := structure(t, "Gravity bends light.\n\nGravity shapes orbits.")
	scores := NewEngine().Score(st)
	scores.Annotate(st.Words)
	found := false
	for _, w := range st.Words {
		if strings.EqualFold(strings.TrimRight(w.Text, "."), "bends") {
			found = true
			if w.TFIDF <= 0 {
				t.Errorf("bends TFIDF = %v, want > 0", w.TFIDF)
			}
		}
	}
	if !found {
		t.Fatal("word 'bends' not found")
	}
}
