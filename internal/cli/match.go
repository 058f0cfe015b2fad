package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwei/irdigest/internal/digest"
	"github.com/mwei/irdigest/internal/docwriter"
	"github.com/mwei/irdigest/internal/extract"
	"github.com/mwei/irdigest/internal/match"
	"github.com/mwei/irdigest/internal/model"
)

var (
	matchKeywords   []string
	matchOutputDir  string
	matchCode       string
	matchRequireCJK bool
	matchPDFTool    string
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <file>...",
	Short: "Scan local files for keywords and write digests",
	Long: `Match scans already-downloaded documents (PDF, HTML or plain text)
without any crawling, and writes the same highlighted .docx digests the
crawl command produces.

Example:
  irdigest match -k 碳酸锂 originals/*.pdf
  irdigest match -k lithium -k 产能 report.html notes.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringArrayVarP(&matchKeywords, "keyword", "k", nil, "keyword to match (repeatable)")
	matchCmd.Flags().StringVarP(&matchOutputDir, "output-dir", "o", "digests", "digest output directory")
	matchCmd.Flags().StringVar(&matchCode, "code", "local", "code used in digest file names")
	matchCmd.Flags().BoolVar(&matchRequireCJK, "require-cjk", false, "keep only paragraphs containing CJK text")
	matchCmd.Flags().StringVar(&matchPDFTool, "pdf-converter", "pdftotext", "external pdf-to-text binary")
}

func runMatch(cmd *cobra.Command, args []string) error {
	if len(matchKeywords) == 0 {
		return fmt.Errorf("at least one --keyword is required")
	}

	aggs := make([]*digest.Aggregator, 0, len(matchKeywords))
	for _, kw := range matchKeywords {
		agg, err := digest.NewAggregator(kw, digest.Options{RequireCJK: matchRequireCJK})
		if err != nil {
			return fmt.Errorf("keyword %q: %w", kw, err)
		}
		aggs = append(aggs, agg)
	}

	ctx := context.Background()
	pdf := extract.NewPDFConverter(matchPDFTool)

	for _, path := range args {
		text, err := loadStoredFile(ctx, pdf, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", path, err)
			continue
		}

		meta := model.DocumentMeta{
			ID:     path,
			Title:  filepath.Base(path),
			Origin: model.OriginStored,
		}
		for _, agg := range aggs {
			agg.AddDocument(meta, text)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Scanned %s\n", path)
		}
	}

	writer := docwriter.NewWriter(matchOutputDir, matchCode, "files")
	wrote := 0
	for _, agg := range aggs {
		result := agg.Result()
		if result.Empty() {
			continue
		}
		out, err := writer.Write(result, "")
		if err != nil {
			return fmt.Errorf("keyword %q: %w", agg.Keyword(), err)
		}
		fmt.Printf("✓ Wrote %s (%d paragraphs)\n", out, result.ParagraphCount())
		wrote++
	}
	if wrote == 0 {
		fmt.Println("No matches; no digests written.")
	}
	return nil
}

// loadStoredFile reads one local document and converts it to normalized
// plain text based on its content, falling back to the file extension.
func loadStoredFile(ctx context.Context, pdf *extract.PDFConverter, path string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var text string
	switch {
	case strings.HasPrefix(string(body[:min(len(body), 5)]), "%PDF-"),
		strings.EqualFold(filepath.Ext(path), ".pdf"):
		text, err = pdf.Convert(ctx, body)
		if err != nil {
			return "", fmt.Errorf("convert PDF: %w", err)
		}
	case extract.IsHTML(body):
		text, err = extract.Text(string(body))
		if err != nil {
			return "", fmt.Errorf("extract HTML text: %w", err)
		}
	default:
		text = string(body)
	}

	return match.Normalize(text), nil
}
