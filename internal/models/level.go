package models

import "fmt"

// MinLevel and MaxLevel bound the detail scale. Level 0 is the original
// text; level 3 is the most compressed variant.
const (
	MinLevel = 0
	MaxLevel = 3
)

// LevelMetadata describes how a level variant relates to its source.
type LevelMetadata struct {
	CompressionRate float64 `json:"compression_rate"`
	WordCount       int     `json:"word_count"`
	SentenceCount   int     `json:"sentence_count,omitempty"`
	Provider        string  `json:"provider,omitempty"`
}

// TextLevel is one detail variant of a document. Levels are produced once
// per document (by a summary provider or precomputed files) and cached for
// the process lifetime.
type TextLevel struct {
	Level    int           `json:"level"`
	Content  string        `json:"content"`
	Metadata LevelMetadata `json:"metadata"`
}

// CompressionBand returns the nominal target word-retention band for a
// level, relative to the previous level. Level 0 keeps everything.
func CompressionBand(level int) (low, high float64) {
	switch level {
	case 1:
		return 0.70, 0.80
	case 2:
		return 0.40, 0.50
	case 3:
		return 0.10, 0.20
	default:
		return 1.0, 1.0
	}
}

// ValidLevel reports whether level is within the supported range.
func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// LevelRequest asks a summary provider for one detail variant.
type LevelRequest struct {
	Level int    `json:"level"`
	Text  string `json:"text,omitempty"`
}

// Validate checks the request fields.
func (r *LevelRequest) Validate() error {
	if !ValidLevel(r.Level) {
		return fmt.Errorf("level must be between %d and %d, got %d", MinLevel, MaxLevel, r.Level)
	}
	return nil
}
