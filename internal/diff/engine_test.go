package diff

import (
	"reflect"
	"sort"
	"testing"
)

func TestDiff_FastPath(t *testing.T) {
	e := NewEngine()
	d := e.Diff("the quick brown fox", "the slow fox runs")

	if !reflect.DeepEqual(d.Kept, []string{"the", "fox"}) {
		t.Errorf("Kept = %v, want [the fox]", d.Kept)
	}
	if !reflect.DeepEqual(d.Removed, []string{"quick", "brown"}) {
		t.Errorf("Removed = %v, want [quick brown]", d.Removed)
	}
	if !reflect.DeepEqual(d.Added, []string{"slow", "runs"}) {
		t.Errorf("Added = %v, want [slow runs]", d.Added)
	}
	if len(d.Morphed) != 0 {
		t.Errorf("Morphed = %v, want empty on fast path", d.Morphed)
	}
}

func TestDiff_SelfIsAllKept(t *testing.T) {
	e := NewEngine()
	text := "A rose is a rose is a rose"
	d := e.Diff(text, text)

	wantKept := []string{"a", "rose", "is"}
	if !reflect.DeepEqual(d.Kept, wantKept) {
		t.Errorf("Kept = %v, want %v", d.Kept, wantKept)
	}
	if len(d.Removed) != 0 || len(d.Added) != 0 {
		t.Errorf("self diff has Removed=%v Added=%v", d.Removed, d.Added)
	}
}

func TestDiff_Symmetry(t *testing.T) {
	e := NewEngine()
	a := "winter is coming to the north"
	b := "summer is leaving the warm south"

	ab := e.Diff(a, b)
	ba := e.Diff(b, a)

	sorted := func(s []string) []string {
		out := append([]string(nil), s...)
		sort.Strings(out)
		return out
	}
	if !reflect.DeepEqual(sorted(ab.Kept), sorted(ba.Kept)) {
		t.Errorf("kept not symmetric: %v vs %v", ab.Kept, ba.Kept)
	}
	if !reflect.DeepEqual(sorted(ab.Removed), sorted(ba.Added)) {
		t.Errorf("removed(a,b) != added(b,a): %v vs %v", ab.Removed, ba.Added)
	}
	if !reflect.DeepEqual(sorted(ab.Added), sorted(ba.Removed)) {
		t.Errorf("added(a,b) != removed(b,a): %v vs %v", ab.Added, ba.Removed)
	}
}

func TestDiff_CategoriesDisjoint(t *testing.T) {
	e := NewEngine()
	d := e.Diff(
		"alpha beta gamma delta alpha",
		"beta epsilon zeta alpha beta beta",
	)
	seen := make(map[string]string)
	check := func(category string, words []string) {
		for _, w := range words {
			if prev, ok := seen[w]; ok {
				t.Errorf("word %q in both %s and %s", w, prev, category)
			}
			seen[w] = category
		}
	}
	check("kept", d.Kept)
	check("removed", d.Removed)
	check("added", d.Added)
}

func TestDiff_FrequencyDifferenceStillKept(t *testing.T) {
	e := NewEngine()
	// "the" occurs 3x in source, 1x in target: still kept, never removed.
	d := e.Diff("the cat the dog the bird", "the fish")
	for _, w := range d.Removed {
		if w == "the" {
			t.Error("'the' classified removed despite appearing in both texts")
		}
	}
	found := false
	for _, w := range d.Kept {
		if w == "the" {
			found = true
		}
	}
	if !found {
		t.Error("'the' missing from kept")
	}
}

func TestDiffDetailed_Morph(t *testing.T) {
	e := NewEngine()
	d := e.DiffDetailed("the walked dog", "the walker cat")

	if len(d.Morphed) != 1 {
		t.Fatalf("Morphed = %v, want one morph", d.Morphed)
	}
	m := d.Morphed[0]
	if m.Source != "walked" || m.Target != "walker" {
		t.Errorf("morph = %s->%s, want walked->walker", m.Source, m.Target)
	}
	if m.Similarity < 0.6 {
		t.Errorf("similarity = %v, want >= 0.6", m.Similarity)
	}
	// The morph pair must not also appear in removed/added.
	for _, w := range d.Removed {
		if w == "walked" {
			t.Error("morph source still in removed")
		}
	}
	for _, w := range d.Added {
		if w == "walker" {
			t.Error("morph target still in added")
		}
	}
	// "dog" -> "cat" is not similar; stays removed/added.
	if !reflect.DeepEqual(d.Removed, []string{"dog"}) {
		t.Errorf("Removed = %v, want [dog]", d.Removed)
	}
	if !reflect.DeepEqual(d.Added, []string{"cat"}) {
		t.Errorf("Added = %v, want [cat]", d.Added)
	}
}

func TestDiffDetailed_TargetConsumedOnce(t *testing.T) {
	e := NewEngine()
	// Both "walked" and "walks" resemble "walker"; only one may morph to it.
	d := e.DiffDetailed("walked walks", "walker strange")
	if len(d.Morphed) != 1 {
		t.Fatalf("Morphed = %v, want exactly one morph", d.Morphed)
	}
	if len(d.Removed) != 1 {
		t.Errorf("Removed = %v, want the losing source word", d.Removed)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"책상", "책장", 1},
	}
	for _, tt := range tests {
		if got := LevenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	if got := LevenshteinSimilarity("same", "same"); got != 1.0 {
		t.Errorf("identical strings = %v, want 1.0", got)
	}
	if got := LevenshteinSimilarity("abcd", "wxyz"); got != 0.0 {
		t.Errorf("disjoint strings = %v, want 0.0", got)
	}
	got := LevenshteinSimilarity("kitten", "sitting")
	want := 1.0 - 3.0/7.0
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("kitten/sitting = %v, want %v", got, want)
	}
}

func TestSemanticSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"case-insensitive equal", "Word", "word", 1.0},
		{"substring containment", "run", "running", 3.0 / 7.0},
		{"shared prefix", "walked", "walker", 5.0 / 6.0},
		{"short prefix ignored", "cat", "car", 0.0},
		{"unrelated", "apple", "stone", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := semanticSimilarity(tt.a, tt.b)
			if got < tt.want-1e-9 || got > tt.want+1e-9 {
				t.Errorf("semanticSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
