package textstruct

import "strings"

// Normalize prepares raw text for structuring without changing its content:
// line-number prefixes of the form "NN → text" are stripped, trailing
// whitespace is trimmed, and runs of blank lines collapse to a single blank
// line so paragraph boundaries are unambiguous.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	emptyRun := 0
	for _, line := range lines {
		if idx := strings.Index(line, "→"); idx >= 0 {
			line = line[idx+len("→"):]
		}
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			emptyRun++
			if emptyRun == 1 {
				out = append(out, "")
			}
			continue
		}
		emptyRun = 0
		out = append(out, line)
	}
	// Drop leading and trailing blank lines.
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
