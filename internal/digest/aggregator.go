package digest

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/mwei/irdigest/internal/match"
	"github.com/mwei/irdigest/internal/model"
)

// ErrEmptyKeyword is returned when a keyword is empty or whitespace-only.
// Validation happens here, at the boundary, so the scanning algorithms
// never see a blank term.
var ErrEmptyKeyword = errors.New("keyword is empty")

// Options configures an Aggregator.
type Options struct {
	// RequireCJK keeps only paragraphs containing a CJK ideograph or
	// full-width ，/。 punctuation. Opt-in; applied after de-duplication.
	RequireCJK bool
}

// Aggregator owns the accumulating result for one keyword across a crawl
// run. Documents are appended in processing order and the result never
// shrinks. Appends are mutex-guarded so documents completed by pooled
// fetch workers can be handed over from multiple goroutines; paragraph
// scanning itself is pure computation and needs no coordination.
type Aggregator struct {
	mu         sync.Mutex
	variants   []string
	requireCJK bool
	result     *model.KeywordResult
}

// NewAggregator creates an empty aggregator for keyword. The keyword's
// variants are generated once and reused for its whole lifetime.
func NewAggregator(keyword string, opts Options) (*Aggregator, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrEmptyKeyword
	}

	variants := match.Variants(keyword)
	return &Aggregator{
		variants:   variants,
		requireCJK: opts.RequireCJK,
		result: &model.KeywordResult{
			Keyword:  keyword,
			Variants: variants,
		},
	}, nil
}

// Keyword returns the keyword this aggregator accumulates for.
func (a *Aggregator) Keyword() string {
	return a.result.Keyword
}

// Variants returns the search forms used when scanning.
func (a *Aggregator) Variants() []string {
	return a.variants
}

// AddDocument segments normalized document text into paragraphs, scans each
// one against the keyword and its variants, and appends the matching
// paragraphs as one document entry. The same literal paragraph text is
// reported at most once per document (first-seen order); de-duplication is
// scoped to the document, so identical paragraphs in different documents
// produce separate entries. Returns the number of paragraphs appended.
func (a *Aggregator) AddDocument(doc model.DocumentMeta, text string) int {
	seen := newOrderedSet()
	var hits []model.ParagraphHit

	for _, para := range match.SplitParagraphs(text) {
		var spans []model.Span
		for _, v := range a.variants {
			spans = append(spans, match.FindMatches(para, v)...)
		}
		if len(spans) == 0 {
			continue
		}
		if !seen.Add(para) {
			continue
		}
		if a.requireCJK && !match.ContainsCJKText(para) {
			continue
		}
		hits = append(hits, model.ParagraphHit{Text: para, Spans: mergeSpans(spans)})
	}

	if len(hits) == 0 {
		return 0
	}

	a.mu.Lock()
	a.result.Documents = append(a.result.Documents, model.DocumentHits{Doc: doc, Paragraphs: hits})
	a.mu.Unlock()

	return len(hits)
}

// Result returns the accumulated result. Call after all documents for the
// run have been added.
func (a *Aggregator) Result() *model.KeywordResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// mergeSpans sorts the unioned variant spans and collapses overlaps so the
// writer receives a total, deterministic segmentation of the paragraph.
func mergeSpans(spans []model.Span) []model.Span {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})

	out := spans[:0]
	for _, s := range spans {
		if n := len(out); n > 0 && s.Start < out[n-1].End {
			if s.End > out[n-1].End {
				out[n-1].End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}
