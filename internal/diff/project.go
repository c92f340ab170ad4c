package diff

import (
	"strings"

	"github.com/pinchlab/yoyak/internal/models"
)

// ProjectDiff re-projects a vocabulary-level diff onto rendered token lists,
// producing per-occurrence references suitable for animating DOM elements.
//
// The diff operates on de-duplicated lowercase word forms, but a page renders
// every occurrence, case preserved. For a word present on both sides,
// exactly min(sourceCount, targetCount) occurrences count as kept; surplus
// occurrences fall into removed (source side) or added (target side). Kept
// and added indices refer to targetTokens; removed indices refer to
// sourceTokens. No index is assigned to more than one category and no
// occurrence is matched twice.
func ProjectDiff(d *models.TransitionDiff, sourceTokens, targetTokens []string) *models.ProjectedDiff {
	srcCount := countLower(sourceTokens)
	tgtCount := countLower(targetTokens)

	keptTgtNeed := make(map[string]int)
	keptSrcBudget := make(map[string]int)
	addedNeed := make(map[string]int)
	removedNeed := make(map[string]int)

	for _, w := range d.Kept {
		n := min(srcCount[w], tgtCount[w])
		keptTgtNeed[w] = n
		keptSrcBudget[w] = n
		if surplus := tgtCount[w] - n; surplus > 0 {
			addedNeed[w] += surplus
		}
		if surplus := srcCount[w] - n; surplus > 0 {
			removedNeed[w] += surplus
		}
	}
	for _, w := range d.Added {
		addedNeed[w] += tgtCount[w]
	}
	for _, w := range d.Removed {
		removedNeed[w] += srcCount[w]
	}

	out := &models.ProjectedDiff{
		Kept:    []models.WordRef{},
		Removed: []models.WordRef{},
		Added:   []models.WordRef{},
		Morphed: []models.MorphRef{},
	}

	for i, tok := range targetTokens {
		lower := strings.ToLower(tok)
		switch {
		case keptTgtNeed[lower] > 0:
			keptTgtNeed[lower]--
			out.Kept = append(out.Kept, models.WordRef{Word: tok, Index: i})
		case addedNeed[lower] > 0:
			addedNeed[lower]--
			out.Added = append(out.Added, models.WordRef{Word: tok, Index: i})
		}
	}

	for i, tok := range sourceTokens {
		lower := strings.ToLower(tok)
		switch {
		case keptSrcBudget[lower] > 0:
			// This occurrence survives the transition; it is not removed.
			keptSrcBudget[lower]--
		case removedNeed[lower] > 0:
			removedNeed[lower]--
			out.Removed = append(out.Removed, models.WordRef{Word: tok, Index: i})
		}
	}

	for _, m := range d.Morphed {
		srcIdx := firstFold(sourceTokens, m.Source)
		tgtIdx := firstFold(targetTokens, m.Target)
		if srcIdx < 0 || tgtIdx < 0 {
			continue
		}
		out.Morphed = append(out.Morphed, models.MorphRef{
			Source:     models.WordRef{Word: sourceTokens[srcIdx], Index: srcIdx},
			Target:     models.WordRef{Word: targetTokens[tgtIdx], Index: tgtIdx},
			Similarity: m.Similarity,
		})
	}
	return out
}

func countLower(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[strings.ToLower(t)]++
	}
	return counts
}

// firstFold returns the index of the first case-insensitive occurrence of
// word in tokens, or -1.
func firstFold(tokens []string, word string) int {
	for i, t := range tokens {
		if strings.EqualFold(t, word) {
			return i
		}
	}
	return -1
}
