package match

import "strings"

// CJK ideograph range considered for variant generation (U+4E00–U+9FFF).
func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// ContainsCJKText reports whether s contains a CJK ideograph or one of the
// full-width punctuation marks ，/。 common in Chinese prose. Used by the
// aggregator's opt-in paragraph filter to drop romanized noise.
func ContainsCJKText(s string) bool {
	for _, r := range s {
		if isCJK(r) || r == '，' || r == '。' {
			return true
		}
	}
	return false
}

// Variants expands a keyword into its search forms. The first element is
// always the keyword itself. When the keyword contains a contiguous CJK run
// of two or more characters, a second form is added with a single ASCII
// space between each character of such runs; non-CJK runs and single CJK
// characters are left untouched. PDF table layouts frequently insert visual
// spacing between CJK glyphs, so the spaced form widens recall without
// combinatorial blowup. Deterministic for a given keyword.
func Variants(keyword string) []string {
	spaced := spaceCJKRuns(keyword)
	if spaced == keyword {
		return []string{keyword}
	}
	return []string{keyword, spaced}
}

func spaceCJKRuns(s string) string {
	var b strings.Builder
	var run []rune

	flush := func() {
		for i, r := range run {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
		}
		run = run[:0]
	}

	for _, r := range s {
		if isCJK(r) {
			run = append(run, r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()

	return b.String()
}
