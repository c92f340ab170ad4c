package levels

import (
	"context"
	"fmt"
	"strings"

	"github.com/pinchlab/yoyak/internal/models"
	"github.com/pinchlab/yoyak/internal/priority"
	"github.com/pinchlab/yoyak/internal/textstruct"
	"github.com/pinchlab/yoyak/internal/tfidf"
)

// ReducerProvider derives level variants locally by dropping the
// lowest-priority words, level by level: level n is reduced from level n-1
// using the midpoint of that level's compression band. It is the fallback
// when no external summarizer is configured and is fully deterministic.
type ReducerProvider struct {
	structurer *textstruct.Structurer
	engine     *tfidf.Engine
	calc       *priority.Calculator
}

// NewReducerProvider creates a local reduction provider.
func NewReducerProvider(structurer *textstruct.Structurer, engine *tfidf.Engine) *ReducerProvider {
	return &ReducerProvider{
		structurer: structurer,
		engine:     engine,
		calc:       priority.NewCalculator(),
	}
}

// Name identifies the provider in level metadata.
func (p *ReducerProvider) Name() string { return "reducer" }

// Fetch produces the requested level from sourceText. Level 0 returns the
// normalized source unmodified.
func (p *ReducerProvider) Fetch(ctx context.Context, level int, sourceText string) (*models.TextLevel, error) {
	if !models.ValidLevel(level) {
		return nil, fmt.Errorf("invalid level %d", level)
	}
	if strings.TrimSpace(sourceText) == "" {
		return nil, fmt.Errorf("source text is empty")
	}

	source := p.structurer.Structure(sourceText)
	sourceWords := len(source.Words)
	text := source.Text
	for l := 1; l <= level; l++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		low, high := models.CompressionBand(l)
		text = p.Reduce(text, (low+high)/2)
	}

	reduced := p.structurer.Structure(text)
	meta := models.LevelMetadata{
		WordCount:     len(reduced.Words),
		SentenceCount: reduced.SentenceCount,
		Provider:      p.Name(),
	}
	if sourceWords > 0 {
		meta.CompressionRate = float64(len(reduced.Words)) / float64(sourceWords)
	}
	return &models.TextLevel{Level: level, Content: text, Metadata: meta}, nil
}

// Reduce drops the lowest-priority words of text until the retention rate is
// met, preserving word order and paragraph breaks.
func (p *ReducerProvider) Reduce(text string, rate float64) string {
	st := p.structurer.Structure(text)
	if len(st.Words) == 0 {
		return st.Text
	}
	p.engine.Score(st).Annotate(st.Words)
	p.calc.Score(st.Words)
	_, kept := priority.SelectWordsToRemove(st.Words, rate)
	return joinWords(kept)
}

// joinWords rebuilds text from words in document order, restoring paragraph
// boundaries as blank lines.
func joinWords(words []models.Word) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			if w.Paragraph != words[i-1].Paragraph {
				b.WriteString("\n\n")
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(w.Text)
	}
	return b.String()
}
