package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PDFConverter turns PDF bytes into plain text by invoking an external
// conversion tool with a pdftotext-compatible invocation:
//
//	<tool> <input.pdf> <output.txt>
//
// Conversion quality and layout handling belong to the tool; this wrapper
// only moves bytes in and text out.
type PDFConverter struct {
	Tool string // binary name or path; defaults to pdftotext
}

// NewPDFConverter returns a converter using the given tool.
func NewPDFConverter(tool string) *PDFConverter {
	if tool == "" {
		tool = "pdftotext"
	}
	return &PDFConverter{Tool: tool}
}

// Convert writes the PDF to a temp file, runs the conversion tool and
// returns the extracted text. The temp files are removed afterwards.
func (c *PDFConverter) Convert(ctx context.Context, pdf []byte) (string, error) {
	dir, err := os.MkdirTemp("", "irdigest-pdf-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	in := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, pdf, 0o644); err != nil {
		return "", fmt.Errorf("write temp pdf: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.Tool, in, out)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("run %s: %w: %s", c.Tool, err, msg)
		}
		return "", fmt.Errorf("run %s: %w", c.Tool, err)
	}

	text, err := os.ReadFile(out)
	if err != nil {
		return "", fmt.Errorf("read converted text: %w", err)
	}
	return string(text), nil
}
