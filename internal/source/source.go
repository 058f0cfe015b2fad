// Package source lists a company's disclosure documents. Each adapter
// knows one listing scheme; the matching pipeline stays independent of
// which adapter supplied the records.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwei/irdigest/internal/model"
)

// Section selects which part of a company's IR site to crawl.
type Section string

const (
	SectionAnnouncements Section = "announcements"
	SectionPerformance   Section = "performance"
)

// ParseSection validates a user-supplied section name.
func ParseSection(s string) (Section, error) {
	switch Section(strings.ToLower(s)) {
	case SectionAnnouncements:
		return SectionAnnouncements, nil
	case SectionPerformance:
		return SectionPerformance, nil
	default:
		return "", fmt.Errorf("unknown section %q (announcements, performance)", s)
	}
}

// HTTPClient is the subset of the pipeline fetcher the adapters need.
type HTTPClient interface {
	GetBody(ctx context.Context, url string) ([]byte, error)
	PostJSON(ctx context.Context, url string, payload, out any) error
}

// Source pages through a company's document listing. Page numbering starts
// at 1; an empty slice means the listing is exhausted. Listings are
// newest-first, which the crawler relies on for its date cutoff.
type Source interface {
	Name() string
	Company() string
	Page(ctx context.Context, page int) ([]model.Record, error)
}

// New builds the adapter for a configured company.
func New(company string, cfg model.CompanyConfig, client HTTPClient, section Section, pageSize int) (Source, error) {
	switch cfg.Kind {
	case model.SourceComein:
		return NewComeinSource(company, cfg, client, pageSize), nil
	case model.SourceIRSite:
		return NewIRSiteSource(company, cfg, client, section)
	default:
		return nil, fmt.Errorf("company %q: unknown source kind %q", company, cfg.Kind)
	}
}
