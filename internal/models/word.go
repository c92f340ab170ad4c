// Package models defines core data structures for structured text, detail
// levels, and word-level transition diffs.
package models

// PosTag is a heuristic part-of-speech tag. The tagger that assigns these is
// best-effort string matching, not a linguistic parser.
type PosTag string

const (
	PosNoun PosTag = "NOUN"
	PosVerb PosTag = "VERB"
	PosAdj  PosTag = "ADJ"
	PosAdv  PosTag = "ADV"
	PosAdp  PosTag = "ADP"
	PosDet  PosTag = "DET"
	PosConj PosTag = "CONJ"
	PosNum  PosTag = "NUM"
)

// posWeights maps each tag to a fixed importance weight used by the priority
// formula. Unknown tags fall back to 0.5 (roughly adjective-tier).
var posWeights = map[PosTag]float64{
	PosNoun: 1.0,
	PosVerb: 0.9,
	PosNum:  0.8,
	PosAdj:  0.5,
	PosAdv:  0.4,
	PosDet:  0.2,
	PosAdp:  0.1,
	PosConj: 0.05,
}

// Weight returns the fixed importance weight for the tag.
func (p PosTag) Weight() float64 {
	if w, ok := posWeights[p]; ok {
		return w
	}
	return 0.5
}

// PriorityGroup buckets words by removal urgency.
type PriorityGroup string

const (
	// GroupImmediate words are dropped first (priority < 0.3).
	GroupImmediate PriorityGroup = "immediate"
	// GroupMiddle words are dropped next (0.3 <= priority < 0.6).
	GroupMiddle PriorityGroup = "middle"
	// GroupLate words are dropped last (priority >= 0.6).
	GroupLate PriorityGroup = "late"
)

// Word is a single token of a structured text with its positional indices and
// scoring fields. Words are built fresh per structuring call and never
// mutated after scoring.
type Word struct {
	Text             string        `json:"text"`
	Position         int           `json:"position"`
	Sentence         int           `json:"sentence"`
	Paragraph        int           `json:"paragraph"`
	Pos              PosTag        `json:"pos"`
	TFIDF            float64       `json:"tfidf"`
	NormalizedTFIDF  float64       `json:"normalized_tfidf"`
	Priority         float64       `json:"priority"`
	Group            PriorityGroup `json:"priority_group,omitempty"`
	IsKeyword        bool          `json:"is_keyword,omitempty"`
	SentenceLength   int           `json:"-"`
	SentencePosition int           `json:"-"`
}
