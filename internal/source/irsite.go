package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mwei/irdigest/internal/model"
)

// IRSiteSource scrapes a company's own investor-relations site. Listing
// pages link to detail pages, and each detail page links the actual PDF.
type IRSiteSource struct {
	company string
	cfg     model.CompanyConfig
	client  HTTPClient
	section Section
}

// NewIRSiteSource creates the scraper for one section of a company IR site.
func NewIRSiteSource(company string, cfg model.CompanyConfig, client HTTPClient, section Section) (*IRSiteSource, error) {
	var listURL string
	switch section {
	case SectionAnnouncements:
		listURL = cfg.AnnouncementURL
	case SectionPerformance:
		listURL = cfg.PerformanceURL
	default:
		return nil, fmt.Errorf("company %q: unsupported section %q", company, section)
	}
	if listURL == "" {
		return nil, fmt.Errorf("company %q: no listing URL configured for section %q", company, section)
	}
	return &IRSiteSource{company: company, cfg: cfg, client: client, section: section}, nil
}

func (s *IRSiteSource) Name() string    { return "irsite" }
func (s *IRSiteSource) Company() string { return s.company }

// Page scrapes one listing page and resolves each entry's detail page for
// the publish date and the PDF link.
func (s *IRSiteSource) Page(ctx context.Context, page int) ([]model.Record, error) {
	listURL := s.listURL(page)
	body, err := s.client.GetBody(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("list page %d: %w", page, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing page %d: %w", page, err)
	}

	itemSel, linkSel := s.selectors()

	var records []model.Record
	var scrapeErr error
	doc.Find(itemSel).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		link := item.Find(linkSel).First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}
		detailURL := s.resolve(href)

		rec, err := s.detail(ctx, detailURL, strings.TrimSpace(link.Text()))
		if err != nil {
			scrapeErr = err
			return false
		}
		if rec != nil {
			records = append(records, *rec)
		}
		return true
	})
	if scrapeErr != nil {
		return nil, scrapeErr
	}

	return records, nil
}

func (s *IRSiteSource) listURL(page int) string {
	base := s.cfg.AnnouncementURL
	if s.section == SectionPerformance {
		base = s.cfg.PerformanceURL
	}
	if strings.Contains(base, "%d") {
		return fmt.Sprintf(base, page)
	}
	return base
}

func (s *IRSiteSource) selectors() (item, link string) {
	if s.section == SectionPerformance {
		return "div.iryeji", "a.iryejia"
	}
	return "div.irggfl", "a.irfont"
}

// detail fetches a detail page and extracts the publish date and the first
// PDF link. Entries without a PDF are skipped.
func (s *IRSiteSource) detail(ctx context.Context, detailURL, title string) (*model.Record, error) {
	body, err := s.client.GetBody(ctx, detailURL)
	if err != nil {
		return nil, fmt.Errorf("detail page %s: %w", detailURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse detail page %s: %w", detailURL, err)
	}

	date := strings.TrimSpace(doc.Find("div.dettime").First().Text())
	date = strings.TrimSpace(strings.TrimPrefix(date, "发布时间："))

	var pdfURL string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		if strings.HasSuffix(strings.ToLower(href), ".pdf") {
			pdfURL = s.resolve(href)
			return false
		}
		return true
	})
	if pdfURL == "" {
		return nil, nil
	}

	return &model.Record{
		Meta: model.DocumentMeta{
			ID:          detailURL,
			Title:       title,
			PublishDate: date,
			SourceURL:   detailURL,
			Origin:      model.OriginPDF,
		},
		ContentURL: pdfURL,
	}, nil
}

func (s *IRSiteSource) resolve(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	base := strings.TrimSuffix(s.cfg.BaseURL, "/")
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base + href
}
