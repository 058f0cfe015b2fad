package model

// Span is the byte-offset range of one keyword occurrence within a
// paragraph's text, used to drive highlighting in the output document.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParagraphHit is one matching paragraph with all of its highlight spans.
// Spans are sorted by start offset and non-overlapping.
type ParagraphHit struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans"`
}

// DocumentHits groups the matching paragraphs of one source document.
type DocumentHits struct {
	Doc        DocumentMeta   `json:"doc"`
	Paragraphs []ParagraphHit `json:"paragraphs"`
}

// KeywordResult accumulates matches for one keyword across all documents
// processed during a crawl run. Document order follows processing order;
// it never shrinks once appended to.
type KeywordResult struct {
	Keyword   string         `json:"keyword"`
	Variants  []string       `json:"variants"`
	Documents []DocumentHits `json:"documents"`
}

// Empty reports whether the run produced no matches at all for the keyword.
// This is a normal outcome, not an error: callers skip output generation.
func (r *KeywordResult) Empty() bool {
	return len(r.Documents) == 0
}

// ParagraphCount returns the total number of matched paragraphs.
func (r *KeywordResult) ParagraphCount() int {
	n := 0
	for _, d := range r.Documents {
		n += len(d.Paragraphs)
	}
	return n
}
