package textstruct

import (
	"strings"
	"unicode"

	"github.com/pinchlab/yoyak/internal/models"
)

// Tagger assigns a part-of-speech tag to a single token. Implementations are
// free to be approximate; the default is string heuristics, not a parser.
type Tagger interface {
	Tag(token string) models.PosTag
}

// Closed word lists for the English heuristics. Membership checks run on the
// lowercased token with surrounding punctuation stripped.
var (
	conjunctions = map[string]bool{
		"and": true, "or": true, "but": true, "nor": true, "yet": true,
		"so": true, "because": true, "although": true, "though": true,
		"while": true, "whereas": true, "however": true,
	}
	prepositions = map[string]bool{
		"in": true, "on": true, "at": true, "to": true, "for": true,
		"of": true, "with": true, "by": true, "from": true, "about": true,
		"into": true, "over": true, "under": true, "between": true,
		"through": true, "during": true, "before": true, "after": true,
		"above": true, "below": true, "up": true, "down": true, "off": true,
	}
	determiners = map[string]bool{
		"the": true, "a": true, "an": true, "this": true, "that": true,
		"these": true, "those": true, "each": true, "every": true,
		"some": true, "any": true, "no": true, "all": true, "both": true,
	}
)

// Hangul suffix runes used by the Korean heuristics. A token ending in a
// particle rune is tagged ADP; one ending in a predicate-ending rune is
// tagged VERB.
var (
	koreanParticles = map[rune]bool{
		'은': true, '는': true, '이': true, '가': true, '을': true,
		'를': true, '에': true, '의': true, '로': true, '와': true,
		'과': true, '도': true, '만': true,
	}
	koreanEndings = map[rune]bool{
		'다': true, '요': true, '죠': true, '며': true, '고': true,
	}
)

// HeuristicTagger is the default best-effort tagger. It matches closed word
// lists and suffix patterns and defaults to NOUN, which biases retention
// toward content words.
type HeuristicTagger struct{}

// NewHeuristicTagger returns the default tagger.
func NewHeuristicTagger() *HeuristicTagger {
	return &HeuristicTagger{}
}

// Tag assigns a PosTag to token. The result is deterministic for identical
// input and intentionally approximate.
func (t *HeuristicTagger) Tag(token string) models.PosTag {
	clean := strings.ToLower(strings.TrimFunc(token, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}))
	if clean == "" {
		return models.PosNoun
	}

	if isAllDigits(clean) {
		return models.PosNum
	}

	if runes := []rune(clean); containsHangul(runes) {
		last := runes[len(runes)-1]
		switch {
		case koreanParticles[last]:
			return models.PosAdp
		case koreanEndings[last]:
			return models.PosVerb
		default:
			return models.PosNoun
		}
	}

	if isAlphabetic(clean) {
		switch {
		case conjunctions[clean]:
			return models.PosConj
		case prepositions[clean]:
			return models.PosAdp
		case determiners[clean]:
			return models.PosDet
		case strings.HasSuffix(clean, "ly") && len(clean) > 3:
			return models.PosAdv
		case (strings.HasSuffix(clean, "ing") || strings.HasSuffix(clean, "ed")) && len(clean) > 4:
			return models.PosVerb
		}
	}

	return models.PosNoun
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

func containsHangul(runes []rune) bool {
	for _, r := range runes {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
