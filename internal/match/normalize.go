package match

import "strings"

// Normalize converts all line-ending styles to a single "\n" and removes
// control characters (ordinal < 32) except tab and newline. Multi-byte code
// points pass through unchanged. Pure and idempotent.
func Normalize(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r >= 32 {
			return r
		}
		return -1
	}, raw)
}
