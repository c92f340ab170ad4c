// Package diff computes word-level transition diffs between two text
// variants, classifying every word as kept, removed, added, or morphed.
// The fast path partitions the unique lowercase vocabularies; the detailed
// path additionally pairs near-identical words via similarity scoring.
package diff

import (
	"strings"

	"github.com/pinchlab/yoyak/internal/models"
)

// defaultMorphThreshold is the minimum combined similarity for a
// removed/added pair to be reported as a morph instead.
const defaultMorphThreshold = 0.6

// Engine computes transition diffs.
type Engine struct {
	sim            Similarity
	morphThreshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithSimilarity overrides the default lexical similarity.
func WithSimilarity(s Similarity) Option {
	return func(e *Engine) { e.sim = s }
}

// WithMorphThreshold overrides the morph classification threshold.
func WithMorphThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 {
			e.morphThreshold = t
		}
	}
}

// NewEngine creates an Engine with the default similarity and threshold.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		sim:            LexicalSimilarity{},
		morphThreshold: defaultMorphThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tokenize splits text into whitespace tokens. Case is preserved; this is
// the rendered token list the projection layer walks.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// lowerTokens returns the lowercase whitespace tokens of text.
func lowerTokens(text string) []string {
	tokens := Tokenize(text)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return tokens
}

// uniqueInOrder returns tokens deduplicated, preserving first-appearance
// order.
func uniqueInOrder(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var out []string
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Diff computes the fast-path transition diff between two raw texts. Every
// lowercase word form present in both texts is kept, regardless of how often
// it occurs on each side; source-only forms are removed, target-only forms
// added. Morphed is always empty on this path.
func (e *Engine) Diff(fromText, toText string) *models.TransitionDiff {
	fromUnique := uniqueInOrder(lowerTokens(fromText))
	toSet := make(map[string]bool)
	for _, t := range lowerTokens(toText) {
		toSet[t] = true
	}

	d := &models.TransitionDiff{
		Kept:    []string{},
		Removed: []string{},
		Added:   []string{},
		Morphed: []models.Morph{},
	}
	fromSet := make(map[string]bool, len(fromUnique))
	for _, t := range fromUnique {
		fromSet[t] = true
		if toSet[t] {
			d.Kept = append(d.Kept, t)
		} else {
			d.Removed = append(d.Removed, t)
		}
	}
	for _, t := range uniqueInOrder(lowerTokens(toText)) {
		if !fromSet[t] {
			d.Added = append(d.Added, t)
		}
	}
	return d
}

// DiffDetailed computes the transition diff and additionally reclassifies
// unmatched pairs as morphs when their combined similarity reaches the
// threshold. Each target word absorbs at most one morph; a source word whose
// best candidate falls below the threshold stays removed.
func (e *Engine) DiffDetailed(fromText, toText string) *models.TransitionDiff {
	fast := e.Diff(fromText, toText)
	if len(fast.Removed) == 0 || len(fast.Added) == 0 {
		return fast
	}

	d := &models.TransitionDiff{
		Kept:    fast.Kept,
		Removed: []string{},
		Added:   []string{},
		Morphed: []models.Morph{},
	}
	usedTargets := make(map[string]bool, len(fast.Added))
	for _, source := range fast.Removed {
		bestScore := 0.0
		bestTarget := ""
		for _, target := range fast.Added {
			if usedTargets[target] {
				continue
			}
			if score := e.sim.Score(source, target); score > bestScore {
				bestScore = score
				bestTarget = target
			}
		}
		if bestTarget != "" && bestScore >= e.morphThreshold {
			usedTargets[bestTarget] = true
			d.Morphed = append(d.Morphed, models.Morph{
				Source:     source,
				Target:     bestTarget,
				Similarity: bestScore,
			})
		} else {
			d.Removed = append(d.Removed, source)
		}
	}
	for _, target := range fast.Added {
		if !usedTargets[target] {
			d.Added = append(d.Added, target)
		}
	}
	return d
}
