package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwei/irdigest/internal/digest"
	"github.com/mwei/irdigest/internal/docwriter"
	"github.com/mwei/irdigest/internal/extract"
	"github.com/mwei/irdigest/internal/llm"
	"github.com/mwei/irdigest/internal/match"
	"github.com/mwei/irdigest/internal/model"
	"github.com/mwei/irdigest/internal/source"
	"github.com/mwei/irdigest/internal/worker"
)

// Options selects what one crawl run covers.
type Options struct {
	Keywords []string
	Section  source.Section
	FromDate string // inclusive, YYYY-MM-DD ("" = no lower bound)
	ToDate   string // inclusive, YYYY-MM-DD ("" = no upper bound)
}

// maxListPages caps pagination when no date window is set.
const maxListPages = 200

// Crawler walks each configured company's document listing, loads the
// documents through a worker pool, and writes one digest per keyword.
type Crawler struct {
	config     *model.Config
	fetcher    *Fetcher
	pdf        *extract.PDFConverter
	summarizer *llm.Summarizer
}

// NewCrawler wires the crawler from the runtime config and a fetcher.
func NewCrawler(cfg *model.Config, fetcher *Fetcher) *Crawler {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Crawler{
		config:     cfg,
		fetcher:    fetcher,
		pdf:        extract.NewPDFConverter(cfg.Crawl.PDFConverter),
		summarizer: summarizer,
	}
}

// RunStats summarizes one crawl run.
type RunStats struct {
	Documents int
	Failed    int
	Digests   []string
}

// Run crawls every configured company for the given keywords. Document
// failures are reported and skipped; the run keeps going.
func (c *Crawler) Run(ctx context.Context, opts Options) (*RunStats, error) {
	if len(opts.Keywords) == 0 {
		return nil, fmt.Errorf("no keywords given")
	}
	if len(c.config.Companies) == 0 {
		return nil, fmt.Errorf("no companies configured")
	}

	stats := &RunStats{}
	for name, company := range c.config.Companies {
		if err := c.runCompany(ctx, name, company, opts, stats); err != nil {
			return stats, fmt.Errorf("company %s: %w", name, err)
		}
	}
	return stats, nil
}

func (c *Crawler) runCompany(ctx context.Context, name string, company model.CompanyConfig, opts Options, stats *RunStats) error {
	src, err := source.New(name, company, c.fetcher, opts.Section, c.config.Crawl.PageSize)
	if err != nil {
		return err
	}

	records, err := c.collectRecords(ctx, src, opts)
	if err != nil {
		return err
	}
	c.logf("%s: %d documents in window", name, len(records))
	if len(records) == 0 {
		return nil
	}

	aggs := make([]*digest.Aggregator, 0, len(opts.Keywords))
	for _, kw := range opts.Keywords {
		agg, err := digest.NewAggregator(kw, digest.Options{RequireCJK: c.config.Crawl.RequireCJK})
		if err != nil {
			return fmt.Errorf("keyword %q: %w", kw, err)
		}
		aggs = append(aggs, agg)
	}

	pool := worker.NewPool(c.config.Concurrency.Workers, c)
	for res := range pool.Run(ctx, records) {
		if res.Err != nil {
			stats.Failed++
			fmt.Fprintf(os.Stderr, "Warning: %s (%s): %v\n", res.Record.Meta.Title, res.Record.ContentURL, res.Err)
			continue
		}
		stats.Documents++
		for _, agg := range aggs {
			agg.AddDocument(res.Record.Meta, res.Text)
		}
	}

	writer := docwriter.NewWriter(c.config.Output.Dir, company.FullCode, string(opts.Section))
	for _, agg := range aggs {
		result := agg.Result()
		if result.Empty() {
			c.logf("%s: no matches for %q", name, agg.Keyword())
			continue
		}

		summary := ""
		if c.summarizer.IsEnabled() {
			summary, err = c.summarizer.Summarize(ctx, result)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}

		path, err := writer.Write(result, summary)
		if err != nil {
			return fmt.Errorf("keyword %q: %w", agg.Keyword(), err)
		}
		stats.Digests = append(stats.Digests, path)
		c.logf("%s: wrote %s (%d paragraphs)", name, path, result.ParagraphCount())
	}

	return nil
}

// collectRecords pages through the listing until it is exhausted or the
// date window closes. Listings are newest-first, so once a record falls
// before FromDate everything after it does too.
func (c *Crawler) collectRecords(ctx context.Context, src source.Source, opts Options) ([]model.Record, error) {
	var records []model.Record
	for page := 1; page <= maxListPages; page++ {
		batch, err := src.Page(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		for _, rec := range batch {
			date := rec.Meta.PublishDate
			if opts.FromDate != "" && date != "" && date < opts.FromDate {
				return records, nil
			}
			if opts.ToDate != "" && date != "" && date > opts.ToDate {
				continue
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// Load fetches one document and converts it to normalized plain text. It
// is called concurrently by the worker pool.
func (c *Crawler) Load(ctx context.Context, rec model.Record) (string, error) {
	body, err := c.fetcher.GetBody(ctx, rec.ContentURL)
	if err != nil {
		return "", err
	}

	if c.config.Crawl.SaveOriginals {
		if err := c.saveOriginal(rec, body); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: save original for %s: %v\n", rec.Meta.ID, err)
		}
	}

	var text string
	switch {
	case rec.Meta.Origin == model.OriginHTML || extract.IsHTML(body):
		text, err = extract.Text(string(body))
		if err != nil {
			return "", fmt.Errorf("extract HTML text: %w", err)
		}
	default:
		text, err = c.pdf.Convert(ctx, body)
		if err != nil {
			return "", fmt.Errorf("convert PDF: %w", err)
		}
	}

	return match.Normalize(text), nil
}

func (c *Crawler) saveOriginal(rec model.Record, body []byte) error {
	dir := c.config.Crawl.OriginalsDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	ext := ".pdf"
	if rec.Meta.Origin == model.OriginHTML || extract.IsHTML(body) {
		ext = ".html"
	}
	name := sanitizeID(rec.Meta.ID) + ext
	return os.WriteFile(filepath.Join(dir, name), body, 0o644)
}

func (c *Crawler) logf(format string, args ...any) {
	if c.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// sanitizeID makes a record ID safe to use as a file name.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, id)
}
