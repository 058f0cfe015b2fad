package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mwei/irdigest/internal/model"
)

// foldedText is a lowercased copy of a string together with a byte-offset
// table mapping every lowered byte position back into the original string.
// Lowercasing can change the encoded length of a rune (e.g. U+0130 folds
// to a shorter sequence), so matching in the lowered copy and reusing the
// indexes directly would corrupt highlight spans.
type foldedText struct {
	lower   string
	offsets []int // len(lower)+1 entries; offsets[i] = original offset for lowered byte i
}

func fold(s string) foldedText {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)

	for i, r := range s {
		lr := unicode.ToLower(r)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			offsets = append(offsets, i)
		}
		b.WriteRune(lr)
	}
	offsets = append(offsets, len(s))

	return foldedText{lower: b.String(), offsets: offsets}
}

// FindMatches locates non-overlapping, case-insensitive literal occurrences
// of term in text, scanning left to right and advancing past each match.
// The term is literal text; punctuation has no special meaning. Returned
// spans are byte offsets into the original (non-lowercased) text. An empty
// result means no occurrences, never an error.
func FindMatches(text, term string) []model.Span {
	if term == "" {
		return nil
	}

	ft := fold(text)
	needle := strings.ToLower(term)

	var spans []model.Span
	pos := 0
	for {
		i := strings.Index(ft.lower[pos:], needle)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(needle)
		spans = append(spans, model.Span{Start: ft.offsets[start], End: ft.offsets[end]})
		pos = end
	}
	return spans
}
