package digest

import (
	"reflect"
	"testing"

	"github.com/mwei/irdigest/internal/model"
)

func doc(id string) model.DocumentMeta {
	return model.DocumentMeta{ID: id, Title: "Report " + id, SourceURL: "https://example.com/" + id, Origin: model.OriginPDF}
}

func TestAggregator_RejectsEmptyKeyword(t *testing.T) {
	for _, kw := range []string{"", "   ", "\t\n"} {
		if _, err := NewAggregator(kw, Options{}); err != ErrEmptyKeyword {
			t.Errorf("Expected ErrEmptyKeyword for %q, got %v", kw, err)
		}
	}
}

func TestAggregator_SingleMatchingParagraph(t *testing.T) {
	a, err := NewAggregator("Lithium", Options{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	text := "Revenue grew.\n\nLithium prices rose in Q2.\n\n\nCosts fell."
	added := a.AddDocument(doc("1"), text)
	if added != 1 {
		t.Fatalf("Expected 1 paragraph added, got %d", added)
	}

	res := a.Result()
	if len(res.Documents) != 1 {
		t.Fatalf("Expected 1 document entry, got %d", len(res.Documents))
	}
	hits := res.Documents[0].Paragraphs
	if len(hits) != 1 {
		t.Fatalf("Expected 1 paragraph hit, got %d", len(hits))
	}
	if hits[0].Text != "Lithium prices rose in Q2." {
		t.Errorf("Unexpected paragraph: %q", hits[0].Text)
	}
	if len(hits[0].Spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(hits[0].Spans))
	}
	if got := hits[0].Text[hits[0].Spans[0].Start:hits[0].Spans[0].End]; got != "Lithium" {
		t.Errorf("Span covers %q, want %q", got, "Lithium")
	}
}

func TestAggregator_VariantHitsDedupedWithinDocument(t *testing.T) {
	a, err := NewAggregator("江西锂业", Options{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The paragraph matches both the original keyword and the spaced
	// variant; it must appear exactly once.
	text := "江西锂业发布公告，江 西 锂 业产能扩张。"
	a.AddDocument(doc("1"), text)

	res := a.Result()
	if len(res.Documents) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(res.Documents))
	}
	if got := len(res.Documents[0].Paragraphs); got != 1 {
		t.Fatalf("Expected paragraph reported once, got %d", got)
	}
	// Both occurrences highlighted, union of the variant scans
	if got := len(res.Documents[0].Paragraphs[0].Spans); got != 2 {
		t.Errorf("Expected 2 spans from the variant union, got %d", got)
	}
}

func TestAggregator_RepeatedParagraphTextDeduped(t *testing.T) {
	a, _ := NewAggregator("锂", Options{})

	text := "锂价上行。\n\n中间段落 no match\n\n锂价上行。"
	added := a.AddDocument(doc("1"), text)
	if added != 1 {
		t.Errorf("Expected identical paragraph texts collapsed to 1, got %d", added)
	}
}

func TestAggregator_DedupScopedPerDocument(t *testing.T) {
	a, _ := NewAggregator("锂", Options{})

	text := "Net profit increased 锂 锂"
	a.AddDocument(doc("1"), text)
	a.AddDocument(doc("2"), text)

	res := a.Result()
	if len(res.Documents) != 2 {
		t.Fatalf("Expected one entry per document, got %d", len(res.Documents))
	}
	for i, d := range res.Documents {
		if len(d.Paragraphs) != 1 {
			t.Errorf("Document %d: expected 1 paragraph, got %d", i, len(d.Paragraphs))
		}
	}
}

func TestAggregator_NoMatchAddsNothing(t *testing.T) {
	a, _ := NewAggregator("cobalt", Options{})

	if added := a.AddDocument(doc("1"), "Lithium only.\n\nNickel too."); added != 0 {
		t.Errorf("Expected 0 paragraphs, got %d", added)
	}
	if res := a.Result(); !res.Empty() {
		t.Errorf("Expected empty result, got %d documents", len(res.Documents))
	}
}

func TestAggregator_RequireCJKFilter(t *testing.T) {
	a, _ := NewAggregator("liye", Options{RequireCJK: true})

	text := "liye corp press release\n\nliye（锂业）业绩增长。"
	a.AddDocument(doc("1"), text)

	res := a.Result()
	if res.ParagraphCount() != 1 {
		t.Fatalf("Expected romanized paragraph filtered, got %d paragraphs", res.ParagraphCount())
	}
	if got := res.Documents[0].Paragraphs[0].Text; got != "liye（锂业）业绩增长。" {
		t.Errorf("Wrong paragraph kept: %q", got)
	}
}

func TestAggregator_DocumentOrderPreserved(t *testing.T) {
	a, _ := NewAggregator("锂", Options{})

	a.AddDocument(doc("first"), "锂 one")
	a.AddDocument(doc("second"), "锂 two")
	a.AddDocument(doc("third"), "锂 three")

	res := a.Result()
	var ids []string
	for _, d := range res.Documents {
		ids = append(ids, d.Doc.ID)
	}
	if !reflect.DeepEqual(ids, []string{"first", "second", "third"}) {
		t.Errorf("Expected processing order preserved, got %v", ids)
	}
}

func TestMergeSpans(t *testing.T) {
	spans := []model.Span{{Start: 10, End: 14}, {Start: 0, End: 3}, {Start: 2, End: 5}, {Start: 10, End: 14}}
	got := mergeSpans(spans)
	want := []model.Span{{Start: 0, End: 5}, {Start: 10, End: 14}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestOrderedSet(t *testing.T) {
	s := newOrderedSet()
	if !s.Add("a") || !s.Add("b") {
		t.Fatal("Expected first insertions to succeed")
	}
	if s.Add("a") {
		t.Error("Expected duplicate insertion to report false")
	}
	if !s.Contains("b") || s.Contains("c") {
		t.Error("Contains mismatch")
	}
	if got := s.Values(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Expected insertion order, got %v", got)
	}
	if s.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", s.Len())
	}
}
