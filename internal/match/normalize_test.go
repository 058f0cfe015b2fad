package match

import "testing"

func TestNormalize_LineEndings(t *testing.T) {
	got := Normalize("a\r\nb\rc\nd")
	want := "a\nb\nc\nd"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalize_StripsControlCharacters(t *testing.T) {
	got := Normalize("a\x00b\x07c\x1fd")
	if got != "abcd" {
		t.Errorf("Expected control characters removed, got %q", got)
	}
}

func TestNormalize_KeepsTabAndNewline(t *testing.T) {
	in := "col1\tcol2\nrow2"
	if got := Normalize(in); got != in {
		t.Errorf("Expected tab and newline preserved, got %q", got)
	}
}

func TestNormalize_CJKPassesThrough(t *testing.T) {
	in := "锂业公司\t公告\n江西"
	if got := Normalize(in); got != in {
		t.Errorf("Expected CJK text unchanged, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"a\r\nb\rc\x01d",
		"锂\x00业\r\n报告",
		"",
		"\r\r\n\x1f",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
