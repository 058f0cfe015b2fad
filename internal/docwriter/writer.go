package docwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gingfrederik/docx"

	"github.com/mwei/irdigest/internal/model"
)

const highlightColor = "FF0000"

// Writer renders one company/section pair's keyword results into .docx
// files under dir, one file per keyword.
type Writer struct {
	dir     string
	code    string
	section string
}

// NewWriter creates a writer for the given output directory. code and
// section become part of each digest's file name.
func NewWriter(dir, code, section string) *Writer {
	return &Writer{dir: dir, code: code, section: section}
}

// Filename returns the digest path for a keyword:
// <dir>/<code>_<keyword>_<section>.docx
func (w *Writer) Filename(keyword string) string {
	name := fmt.Sprintf("%s_%s_%s.docx", w.code, sanitizeFilename(keyword), w.section)
	return filepath.Join(w.dir, name)
}

// Write renders the result to its digest file. Empty results produce no
// file and return an empty path.
func (w *Writer) Write(result *model.KeywordResult, summary string) (string, error) {
	if result.Empty() {
		return "", nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := docx.NewFile()

	title := f.AddParagraph().AddText(fmt.Sprintf("Keyword digest: %s", result.Keyword))
	title.Size(20)

	meta := f.AddParagraph().AddText(fmt.Sprintf("%s / %s, %d documents, %d paragraphs",
		w.code, w.section, len(result.Documents), result.ParagraphCount()))
	meta.Size(10)
	meta.Color("808080")

	if summary != "" {
		f.AddParagraph()
		sumRun := f.AddParagraph().AddText(summary)
		sumRun.Size(10)
	}

	for _, doc := range result.Documents {
		f.AddParagraph()
		f.AddParagraph().AddText("--------------------------------------------------")
		f.AddParagraph()

		docTitle := f.AddParagraph().AddText(doc.Doc.Title)
		docTitle.Size(16)

		line := f.AddParagraph().AddText(w.metaLine(doc.Doc))
		line.Size(10)
		line.Color("808080")

		if doc.Doc.SourceURL != "" {
			f.AddParagraph().AddLink("Source", doc.Doc.SourceURL)
		}

		for i, para := range doc.Paragraphs {
			f.AddParagraph()
			loc := f.AddParagraph().AddText(fmt.Sprintf("Location %d", i+1))
			loc.Size(10)
			loc.Color("808080")

			p := f.AddParagraph()
			for _, seg := range SplitRuns(para.Text, para.Spans) {
				run := p.AddText(seg.Text)
				if seg.Highlighted {
					run.Color(highlightColor)
				}
			}
		}
	}

	path := w.Filename(result.Keyword)
	if err := f.Save(path); err != nil {
		return "", fmt.Errorf("save digest: %w", err)
	}
	return path, nil
}

func (w *Writer) metaLine(meta model.DocumentMeta) string {
	parts := []string{string(meta.Origin)}
	if meta.PublishDate != "" {
		parts = append(parts, meta.PublishDate)
	}
	if meta.Author != "" {
		parts = append(parts, meta.Author)
	}
	return strings.Join(parts, " | ")
}

// sanitizeFilename strips characters that are unsafe in file names.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		default:
			return r
		}
	}, s)
}
