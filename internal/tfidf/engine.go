// Package tfidf scores word importance within a single document, treating
// each paragraph as one "document" for IDF purposes. Scores reflect
// paragraph-level dispersion, not a cross-document corpus.
package tfidf

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pinchlab/yoyak/internal/models"
	"github.com/pinchlab/yoyak/internal/textstruct"
)

// defaultStopWords is a small fixed mixed-language set excluded from scoring.
var defaultStopWords = map[string]bool{
	// English
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "it": true, "as": true,
	"be": true, "was": true, "are": true, "this": true, "that": true,
	"not": true, "no": true, "so": true, "if": true,
	// Korean
	"그": true, "이": true, "저": true, "것": true, "수": true, "때": true,
	"그리고": true, "하지만": true, "그러나": true, "또한": true, "및": true,
	"등": true, "더": true, "약": true,
}

// Engine computes TF-IDF scores for the candidate words of one document.
type Engine struct {
	stopWords     map[string]bool
	minWordLength int
}

// Option configures an Engine.
type Option func(*Engine)

// WithExtraStopWords adds words to the default stop-word set.
func WithExtraStopWords(words []string) Option {
	return func(e *Engine) {
		for _, w := range words {
			e.stopWords[strings.ToLower(w)] = true
		}
	}
}

// WithMinWordLength sets the minimum candidate length in runes (default 2).
func WithMinWordLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minWordLength = n
		}
	}
}

// NewEngine creates an Engine with the default stop words and minimum
// word length.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		stopWords:     make(map[string]bool, len(defaultStopWords)),
		minWordLength: 2,
	}
	for w := range defaultStopWords {
		e.stopWords[w] = true
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scores holds raw and min-max normalized TF-IDF values per candidate word.
type Scores struct {
	Raw        map[string]float64
	Normalized map[string]float64
}

// Keyword is a scored term, used for top-N extraction.
type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// CleanToken lowercases a token and strips surrounding punctuation, giving
// the scoring key for a rendered word. Returns "" for pure punctuation.
func CleanToken(token string) string {
	return strings.ToLower(strings.TrimFunc(token, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}))
}

// candidate reports whether a cleaned token participates in scoring.
func (e *Engine) candidate(clean string) bool {
	if clean == "" || e.stopWords[clean] {
		return false
	}
	return len([]rune(clean)) >= e.minWordLength
}

// Score computes TF-IDF for every candidate word of st.
//
// TF is the word's count in the whole document's token stream divided by the
// total token count. IDF is ln(totalParagraphs / paragraphsContainingWord),
// guarded to 0 for degenerate inputs. Normalized scores are min-max scaled
// to [0,1]; when all raw scores are equal the normalized value is fixed at
// 0.5 to avoid a zero division.
func (e *Engine) Score(st *textstruct.Structured) *Scores {
	scores := &Scores{
		Raw:        make(map[string]float64),
		Normalized: make(map[string]float64),
	}
	totalTokens := len(st.Words)
	if totalTokens == 0 {
		return scores
	}

	counts := make(map[string]int)
	for _, w := range st.Words {
		clean := CleanToken(w.Text)
		if e.candidate(clean) {
			counts[clean]++
		}
	}

	paragraphs := st.ParagraphTokens()
	totalParagraphs := len(paragraphs)
	docFreq := make(map[string]int)
	for _, tokens := range paragraphs {
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			clean := CleanToken(tok)
			if clean != "" && !seen[clean] {
				docFreq[clean]++
				seen[clean] = true
			}
		}
	}

	for word, count := range counts {
		tf := float64(count) / float64(totalTokens)
		idf := 0.0
		if df := docFreq[word]; df > 0 && totalParagraphs > 0 {
			idf = math.Log(float64(totalParagraphs) / float64(df))
		}
		scores.Raw[word] = tf * idf
	}

	normalize(scores)
	return scores
}

// normalize min-max scales Raw into Normalized.
func normalize(s *Scores) {
	if len(s.Raw) == 0 {
		return
	}
	minScore := math.Inf(1)
	maxScore := math.Inf(-1)
	for _, v := range s.Raw {
		minScore = math.Min(minScore, v)
		maxScore = math.Max(maxScore, v)
	}
	spread := maxScore - minScore
	for word, v := range s.Raw {
		if spread == 0 {
			s.Normalized[word] = 0.5
			continue
		}
		s.Normalized[word] = (v - minScore) / spread
	}
}

// Annotate writes TFIDF and NormalizedTFIDF onto each word. Words that were
// filtered out of scoring (stop words, short words) keep zero scores.
func (s *Scores) Annotate(words []models.Word) {
	for i := range words {
		clean := CleanToken(words[i].Text)
		words[i].TFIDF = s.Raw[clean]
		words[i].NormalizedTFIDF = s.Normalized[clean]
	}
}

// TopN returns the n highest-scoring keywords by raw TF-IDF, descending.
// Ties break on the term for deterministic output.
func (s *Scores) TopN(n int) []Keyword {
	ranked := s.ranked()
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TopPercent returns the top fraction (0..1] of keywords by raw TF-IDF.
func (s *Scores) TopPercent(p float64) []Keyword {
	ranked := s.ranked()
	if p <= 0 || len(ranked) == 0 {
		return nil
	}
	if p > 1 {
		p = 1
	}
	n := int(math.Ceil(float64(len(ranked)) * p))
	return ranked[:n]
}

func (s *Scores) ranked() []Keyword {
	ranked := make([]Keyword, 0, len(s.Raw))
	for term, score := range s.Raw {
		ranked = append(ranked, Keyword{Term: term, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Term < ranked[j].Term
	})
	return ranked
}
