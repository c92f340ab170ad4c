// Package textstruct splits raw text into paragraphs, sentences, and words,
// attaching positional indices and a heuristic part-of-speech tag to each
// word. Output is deterministic for identical input.
package textstruct

import (
	"strings"

	"github.com/pinchlab/yoyak/internal/models"
)

// Structured is the result of structuring one text variant. Word positions
// are unique and monotonically increasing; sentence and paragraph indices
// are non-decreasing with position.
type Structured struct {
	Text           string
	Words          []models.Word
	ParagraphCount int
	SentenceCount  int
}

// Tokens returns the lowercase token stream of the whole document.
func (s *Structured) Tokens() []string {
	tokens := make([]string, len(s.Words))
	for i, w := range s.Words {
		tokens[i] = strings.ToLower(w.Text)
	}
	return tokens
}

// ParagraphTokens returns the lowercase tokens of each paragraph, in order.
// Paragraphs act as the per-document unit for IDF.
func (s *Structured) ParagraphTokens() [][]string {
	out := make([][]string, s.ParagraphCount)
	for _, w := range s.Words {
		out[w.Paragraph] = append(out[w.Paragraph], strings.ToLower(w.Text))
	}
	return out
}

// Structurer splits text and tags words. The zero value is not usable; use
// NewStructurer.
type Structurer struct {
	tagger Tagger
}

// StructurerOption configures a Structurer.
type StructurerOption func(*Structurer)

// WithTagger overrides the default heuristic tagger.
func WithTagger(t Tagger) StructurerOption {
	return func(s *Structurer) { s.tagger = t }
}

// NewStructurer creates a Structurer with the default heuristic tagger.
func NewStructurer(opts ...StructurerOption) *Structurer {
	s := &Structurer{tagger: NewHeuristicTagger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Structure normalizes text and splits it into indexed, tagged words.
// Paragraphs break on blank lines; sentences on terminal punctuation.
func (s *Structurer) Structure(text string) *Structured {
	normalized := Normalize(text)
	result := &Structured{Text: normalized}
	if strings.TrimSpace(normalized) == "" {
		return result
	}

	position := 0
	sentenceIdx := 0
	paragraphs := strings.Split(normalized, "\n\n")
	paraIdx := 0
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sentences := SplitSentences(para)
		for _, sentence := range sentences {
			tokens := strings.Fields(sentence)
			if len(tokens) == 0 {
				continue
			}
			for i, token := range tokens {
				result.Words = append(result.Words, models.Word{
					Text:             token,
					Position:         position,
					Sentence:         sentenceIdx,
					Paragraph:        paraIdx,
					Pos:              s.tagger.Tag(token),
					SentenceLength:   len(tokens),
					SentencePosition: i,
				})
				position++
			}
			sentenceIdx++
		}
		paraIdx++
	}
	result.ParagraphCount = paraIdx
	result.SentenceCount = sentenceIdx
	return result
}

// sentenceTerminators end a sentence when followed by whitespace or EOF.
var sentenceTerminators = map[rune]bool{
	'.': true, '!': true, '?': true, '…': true,
}

// SplitSentences splits a paragraph into sentences on terminal punctuation.
// Terminators followed by a closing quote or bracket stay attached to the
// sentence. A paragraph with no terminator is a single sentence.
func SplitSentences(para string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(para)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if !sentenceTerminators[r] {
			continue
		}
		// Absorb closing quotes/brackets and repeated terminators.
		for i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\'' ||
			runes[i+1] == ')' || runes[i+1] == ']' || sentenceTerminators[runes[i+1]]) {
			i++
			current.WriteRune(runes[i])
		}
		if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
			sentence := strings.TrimSpace(current.String())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
