package model

// Origin tags where a document's text came from
type Origin string

const (
	OriginPDF    Origin = "pdf"    // Converted from a PDF report
	OriginHTML   Origin = "html"   // Extracted from a rendered HTML page
	OriginStored Origin = "stored" // Read from a previously stored document
)

// DocumentMeta carries per-document metadata used only for result labeling.
// The core never interprets these fields beyond grouping and display.
type DocumentMeta struct {
	ID          string `json:"id"`                     // Source record identifier
	Title       string `json:"title"`                  // Document title
	Author      string `json:"author,omitempty"`       // Publishing author/analyst
	PublishDate string `json:"publish_date,omitempty"` // YYYY-MM-DD as reported by the source
	SourceURL   string `json:"source_url"`             // Where the document was retrieved from
	Origin      Origin `json:"origin"`                 // pdf, html, stored
}

// Record is a listing entry discovered by a source adapter, pointing at
// content that still has to be fetched and converted to text.
type Record struct {
	Meta       DocumentMeta `json:"meta"`
	ContentURL string       `json:"content_url"` // URL to fetch the document body from
}
