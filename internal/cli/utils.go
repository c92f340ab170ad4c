// Package cli provides output formatting for the yoyak command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pinchlab/yoyak/internal/models"
)

// OutputFormat selects how command results are written.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "json":
		return OutputJSON, nil
	case "text", "":
		return OutputText, nil
	default:
		return OutputText, fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteLevels writes one or more detail variants to w in the given format.
func WriteLevels(w io.Writer, lvs []*models.TextLevel, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lvs)
	}
	for i, lv := range lvs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "--- level %d (%d words, %.0f%% of source, provider %s) ---\n",
			lv.Level,
			lv.Metadata.WordCount,
			lv.Metadata.CompressionRate*100,
			lv.Metadata.Provider)
		fmt.Fprintln(w, lv.Content)
	}
	return nil
}

// WriteDiff writes a transition diff and its projection to w.
func WriteDiff(w io.Writer, d *models.TransitionDiff, projected *models.ProjectedDiff, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"diff":      d,
			"projected": projected,
		})
	}
	fmt.Fprintf(w, "kept:    %d  %s\n", len(d.Kept), joinSample(d.Kept, 12))
	fmt.Fprintf(w, "removed: %d  %s\n", len(d.Removed), joinSample(d.Removed, 12))
	fmt.Fprintf(w, "added:   %d  %s\n", len(d.Added), joinSample(d.Added, 12))
	if len(d.Morphed) > 0 {
		fmt.Fprintf(w, "morphed: %d\n", len(d.Morphed))
		for _, m := range d.Morphed {
			fmt.Fprintf(w, "  %s -> %s (%.2f)\n", m.Source, m.Target, m.Similarity)
		}
	}
	if projected != nil {
		fmt.Fprintf(w, "projected occurrences: %d kept, %d removed, %d added\n",
			len(projected.Kept), len(projected.Removed), len(projected.Added))
	}
	return nil
}

// joinSample joins up to max words for a one-line preview.
func joinSample(words []string, max int) string {
	if len(words) == 0 {
		return ""
	}
	if len(words) > max {
		return strings.Join(words[:max], " ") + " ..."
	}
	return strings.Join(words, " ")
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
