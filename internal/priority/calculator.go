// Package priority combines TF-IDF, part-of-speech, syntactic-position, and
// in-sentence location signals into a single removal priority per word.
// Low-priority words are dropped first when a text is reduced locally.
package priority

import (
	"math"
	"sort"

	"github.com/pinchlab/yoyak/internal/models"
)

// Fixed combination weights. The four signals always sum with these factors;
// the result is clamped to [0,1].
const (
	tfidfWeight    = 0.4
	posWeight      = 0.3
	syntaxWeight   = 0.2
	locationWeight = 0.1
)

// Group thresholds: below groupImmediateMax drop first, above groupLateMin
// drop last.
const (
	groupImmediateMax = 0.3
	groupLateMin      = 0.6
)

// Calculator scores words for removal urgency.
type Calculator struct{}

// NewCalculator returns a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Score computes Priority and Group for every word in place. Words must
// already carry NormalizedTFIDF (see tfidf.Scores.Annotate).
func (c *Calculator) Score(words []models.Word) {
	for i := range words {
		w := &words[i]
		p := tfidfWeight*w.NormalizedTFIDF +
			posWeight*w.Pos.Weight() +
			syntaxWeight*syntaxScore(w) +
			locationWeight*locationScore(w)
		w.Priority = clamp01(p)
		w.Group = groupFor(w.Priority)
	}
}

// syntaxScore is a positional heuristic for the word's syntactic role.
// Nouns early in a sentence look subject-like and score highest; nouns past
// the midpoint look object-like.
func syntaxScore(w *models.Word) float64 {
	switch w.Pos {
	case models.PosNoun:
		if w.SentenceLength <= 0 {
			return 0.6
		}
		rel := float64(w.SentencePosition) / float64(w.SentenceLength)
		switch {
		case rel < 0.3:
			return 1.0
		case rel > 0.5:
			return 0.8
		default:
			return 0.6
		}
	case models.PosVerb:
		return 0.9
	case models.PosAdj, models.PosAdv:
		return 0.3
	case models.PosAdp, models.PosConj:
		return 0.1
	default:
		return 0.5
	}
}

// locationScore favors earlier words within a sentence. Sentences of length
// zero or one score 1.0 to avoid a degenerate division.
func locationScore(w *models.Word) float64 {
	if w.SentenceLength <= 1 {
		return 1.0
	}
	return 1.0 - float64(w.SentencePosition)/float64(w.SentenceLength)
}

func groupFor(priority float64) models.PriorityGroup {
	switch {
	case priority < groupImmediateMax:
		return models.GroupImmediate
	case priority < groupLateMin:
		return models.GroupMiddle
	default:
		return models.GroupLate
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// SelectWordsToRemove partitions words into (toRemove, toKeep) for the given
// retention rate. Exactly round(len × (1−rate)) words are removed: the
// lowest-priority prefix of a stable ascending sort, so equal priorities
// keep their original relative order. Both returned slices preserve original
// document order.
func SelectWordsToRemove(words []models.Word, rate float64) (toRemove, toKeep []models.Word) {
	if len(words) == 0 {
		return nil, nil
	}
	rate = clamp01(rate)
	n := int(math.Round(float64(len(words)) * (1 - rate)))
	if n <= 0 {
		return nil, append([]models.Word(nil), words...)
	}
	if n >= len(words) {
		return append([]models.Word(nil), words...), nil
	}

	sorted := append([]models.Word(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	removed := make(map[int]bool, n)
	for _, w := range sorted[:n] {
		removed[w.Position] = true
	}
	for _, w := range words {
		if removed[w.Position] {
			toRemove = append(toRemove, w)
		} else {
			toKeep = append(toKeep, w)
		}
	}
	return toRemove, toKeep
}
