// Package postprocess cleans up raw model output before it is returned to callers.
package postprocess

import "strings"

// disclosurePhrases are removed from model output wherever they occur.
var disclosurePhrases = []string{"AI language model", "as an AI"}

// Deduplicate strips disclosure phrases, splits text into sentences on '.', drops empty and
// case-insensitively repeated sentences (first occurrence wins) and rejoins them with ". ".
// Output always ends with '.', so text with no sentences yields ".".
// Deduplicate(Deduplicate(x)) == Deduplicate(x).
func Deduplicate(text string) string {
	text = stripDisclosures(text)

	seen := make(map[string]struct{})
	var kept []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, s)
	}
	return strings.Join(kept, ". ") + "."
}

// stripDisclosures removes every phrase until none is left, so removals that join two halves
// of a phrase are caught too.
func stripDisclosures(text string) string {
	for {
		prev := text
		for _, p := range disclosurePhrases {
			text = strings.ReplaceAll(text, p, "")
		}
		if text == prev {
			return text
		}
	}
}
