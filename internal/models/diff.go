package models

import "fmt"

// Morph is a source word replaced by a lexically similar target word.
type Morph struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Similarity float64 `json:"similarity"`
}

// TransitionDiff classifies the vocabulary change between two text variants.
// Kept, Removed, and Added hold unique lowercase word forms and are pairwise
// disjoint by construction: Kept is the intersection of the two vocabularies,
// Removed is source-only, Added is target-only.
type TransitionDiff struct {
	Kept    []string `json:"kept"`
	Removed []string `json:"removed"`
	Added   []string `json:"added"`
	Morphed []Morph  `json:"morphed"`
}

// WordRef points at one rendered occurrence of a word: the original-case
// token and its index within the rendered token list.
type WordRef struct {
	Word  string `json:"word"`
	Index int    `json:"index"`
}

// MorphRef pairs the first rendered occurrence of a morph's source and
// target tokens.
type MorphRef struct {
	Source     WordRef `json:"source"`
	Target     WordRef `json:"target"`
	Similarity float64 `json:"similarity"`
}

// ProjectedDiff is a TransitionDiff re-projected onto rendered token lists,
// respecting per-word multiplicity. Indices in Kept and Added refer to the
// target token list; indices in Removed refer to the source token list. No
// index appears in more than one category.
type ProjectedDiff struct {
	Kept    []WordRef  `json:"kept"`
	Removed []WordRef  `json:"removed"`
	Added   []WordRef  `json:"added"`
	Morphed []MorphRef `json:"morphed"`
}

// DiffRequest asks for a word-level transition diff between two texts.
type DiffRequest struct {
	FromText string `json:"from_text"`
	ToText   string `json:"to_text"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Validate rejects requests with missing texts. Empty strings are invalid
// input, not empty documents; no partial diff is computed for them.
func (r *DiffRequest) Validate() error {
	if r.FromText == "" {
		return fmt.Errorf("from_text is required")
	}
	if r.ToText == "" {
		return fmt.Errorf("to_text is required")
	}
	return nil
}
