package match

import (
	"regexp"
	"strings"
)

// A paragraph boundary is a newline followed by any number of
// whitespace-only lines.
var paragraphBoundary = regexp.MustCompile(`\n\s*\n+`)

// SplitParagraphs splits normalized text into paragraphs on runs of blank
// lines. Each paragraph is trimmed; empty chunks are dropped; source order
// is preserved.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range paragraphBoundary.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}
