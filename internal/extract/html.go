package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Block-level elements that delimit paragraphs in the extracted text.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"li": true, "tr": true, "table": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "header": true, "footer": true, "main": true,
}

// Text extracts the visible text of an HTML document, separating
// block-level elements with blank lines so the paragraph segmenter sees
// the same units a reader would. Script, style, noscript and iframe
// content is skipped.
func Text(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "br":
				b.WriteByte('\n')
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				b.WriteString(text)
				b.WriteByte(' ')
			}
		}

		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			b.WriteString("\n\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteString("\n\n")
		}
	}

	walk(doc)
	return b.String(), nil
}

// IsHTML reports whether a fetched body is HTML rather than a binary
// document. Preview endpoints sometimes answer a PDF request with an HTML
// page; callers route such bodies to the HTML extractor instead of the
// PDF converter.
func IsHTML(body []byte) bool {
	trimmed := strings.TrimLeft(string(body[:min(len(body), 256)]), " \t\r\n")
	return strings.HasPrefix(trimmed, "<")
}
