package match

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mwei/irdigest/internal/model"
)

func TestFindMatches_CaseInsensitive(t *testing.T) {
	spans := FindMatches("The ABC of lithium", "abc")
	want := []model.Span{{Start: 4, End: 7}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Expected %v, got %v", want, spans)
	}
}

func TestFindMatches_SpansIndexOriginalText(t *testing.T) {
	text := "Lithium prices rose"
	spans := FindMatches(text, "lithium")
	if len(spans) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(spans))
	}
	if got := text[spans[0].Start:spans[0].End]; got != "Lithium" {
		t.Errorf("Span does not cover the occurrence, got %q", got)
	}
}

func TestFindMatches_NonOverlapping(t *testing.T) {
	spans := FindMatches("aaaa", "aa")
	want := []model.Span{{Start: 0, End: 2}, {Start: 2, End: 4}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Expected non-overlapping scan %v, got %v", want, spans)
	}
}

func TestFindMatches_NoOccurrence(t *testing.T) {
	if spans := FindMatches("nothing here", "lithium"); len(spans) != 0 {
		t.Errorf("Expected empty result, got %v", spans)
	}
}

func TestFindMatches_EmptyTerm(t *testing.T) {
	if spans := FindMatches("text", ""); spans != nil {
		t.Errorf("Expected nil for empty term, got %v", spans)
	}
}

func TestFindMatches_PunctuationIsLiteral(t *testing.T) {
	text := "margin (adjusted) was 12.5%"
	spans := FindMatches(text, "(adjusted)")
	if len(spans) != 1 {
		t.Fatalf("Expected 1 literal match, got %d", len(spans))
	}
	if got := text[spans[0].Start:spans[0].End]; got != "(adjusted)" {
		t.Errorf("Expected literal punctuation match, got %q", got)
	}
}

func TestFindMatches_CJK(t *testing.T) {
	text := "江西锂业公告：江 西 锂 业"
	spans := FindMatches(text, "江西锂业")
	if len(spans) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(spans))
	}
	if got := text[spans[0].Start:spans[0].End]; got != "江西锂业" {
		t.Errorf("Expected CJK span, got %q", got)
	}

	spans = FindMatches(text, "江 西 锂 业")
	if len(spans) != 1 {
		t.Fatalf("Expected 1 spaced-variant match, got %d", len(spans))
	}
	if got := text[spans[0].Start:spans[0].End]; got != "江 西 锂 业" {
		t.Errorf("Expected spaced CJK span, got %q", got)
	}
}

func TestFindMatches_UpperParagraphLowerTerm(t *testing.T) {
	p := "Lithium demand doubled; lithium supply lagged."
	upper := strings.ToUpper(p)

	orig := FindMatches(p, "LITHIUM")
	folded := FindMatches(upper, "lithium")

	if len(orig) != len(folded) {
		t.Fatalf("Expected same match count, got %d vs %d", len(orig), len(folded))
	}
	for i := range folded {
		if got := upper[folded[i].Start:folded[i].End]; !strings.EqualFold(got, "lithium") {
			t.Errorf("Span %d covers %q in the uppercased copy", i, got)
		}
	}
}

func TestFindMatches_FoldChangesByteLength(t *testing.T) {
	// U+0130 lowercases to a rune with a different encoded length; spans
	// must still index the original text correctly.
	text := "report İstanbul office"
	spans := FindMatches(text, "office")
	if len(spans) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(spans))
	}
	if got := text[spans[0].Start:spans[0].End]; got != "office" {
		t.Errorf("Expected span to cover %q, got %q", "office", got)
	}
}
