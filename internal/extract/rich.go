package extract

import (
	"fmt"

	"github.com/lu4p/cat"
)

// extractRich extracts text from RTF and ODT bytes. The format is detected
// from the content itself, so a mislabeled file still extracts if it is one
// of the formats cat understands.
func extractRich(content []byte) (string, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return "", fmt.Errorf("extract rich text: %w", err)
	}
	return text, nil
}
