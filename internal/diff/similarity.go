package diff

import "strings"

// Similarity scores how alike two words are, in [0,1]. The default is a
// cheap lexical heuristic; a real embedding model could be substituted
// without touching the diff classification logic.
type Similarity interface {
	Score(a, b string) float64
}

// Combination weights for the default similarity: edit distance carries 0.4,
// the semantic heuristic 0.6.
const (
	levenshteinWeight = 0.4
	semanticWeight    = 0.6
)

// LexicalSimilarity is the default Similarity: a weighted blend of
// Levenshtein similarity and a substring/prefix heuristic.
type LexicalSimilarity struct{}

// Score returns the combined similarity of a and b.
func (LexicalSimilarity) Score(a, b string) float64 {
	return levenshteinWeight*LevenshteinSimilarity(a, b) +
		semanticWeight*semanticSimilarity(a, b)
}

// semanticSimilarity is a string heuristic, not real semantics: equal words
// score 1.0, containment scores by length ratio, shared prefixes of three or
// more characters score by prefix length, anything else scores 0.
func semanticSimilarity(a, b string) float64 {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if la == lb {
		return 1.0
	}
	runesA := []rune(la)
	runesB := []rune(lb)
	maxLen := max(len(runesA), len(runesB))
	minLen := min(len(runesA), len(runesB))
	if maxLen == 0 {
		return 1.0
	}
	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		return float64(minLen) / float64(maxLen)
	}
	prefix := 0
	for prefix < minLen && runesA[prefix] == runesB[prefix] {
		prefix++
	}
	if prefix >= 3 {
		return float64(prefix) / float64(maxLen)
	}
	return 0.0
}
