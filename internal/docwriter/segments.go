// Package docwriter renders keyword results as .docx digest files with the
// matched terms highlighted.
package docwriter

import "github.com/mwei/irdigest/internal/model"

// Segment is one run of paragraph text, either plain or highlighted.
type Segment struct {
	Text        string
	Highlighted bool
}

// SplitRuns cuts a paragraph into alternating plain and highlighted
// segments along the match spans. Spans must be sorted and non-overlapping;
// offsets are byte positions and are clamped to the text.
func SplitRuns(text string, spans []model.Span) []Segment {
	if len(spans) == 0 {
		if text == "" {
			return nil
		}
		return []Segment{{Text: text}}
	}

	var segs []Segment
	pos := 0
	for _, span := range spans {
		start, end := span.Start, span.End
		if start < pos {
			start = pos
		}
		if end > len(text) {
			end = len(text)
		}
		if start >= end {
			continue
		}
		if start > pos {
			segs = append(segs, Segment{Text: text[pos:start]})
		}
		segs = append(segs, Segment{Text: text[start:end], Highlighted: true})
		pos = end
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:]})
	}
	return segs
}
