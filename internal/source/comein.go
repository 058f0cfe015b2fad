package source

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mwei/irdigest/internal/model"
)

// ComeinSource lists reports through the comein IR-store JSON API. Records
// either carry a direct content URL (PDF behind a preview wrapper, or an
// HTML detail page) or no URL at all, in which case the detail page URL is
// derived from the report id.
type ComeinSource struct {
	company  string
	cfg      model.CompanyConfig
	client   HTTPClient
	pageSize int
}

// NewComeinSource creates the adapter for a comein-hosted company.
func NewComeinSource(company string, cfg model.CompanyConfig, client HTTPClient, pageSize int) *ComeinSource {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ComeinSource{company: company, cfg: cfg, client: client, pageSize: pageSize}
}

func (s *ComeinSource) Name() string    { return "comein" }
func (s *ComeinSource) Company() string { return s.company }

type comeinRequest struct {
	PageStart    int    `json:"pagestart"` // 0-based page index
	PageNum      int    `json:"pagenum"`
	FullCode     string `json:"fullCode"`
	Keyword      string `json:"keyword"`
	LanguageType int    `json:"languageType"`
}

type comeinResponse struct {
	Code string      `json:"code"`
	Rows []comeinRow `json:"rows"`
}

type comeinRow struct {
	ID          json.Number `json:"id"`
	ReportID    json.Number `json:"reportId"`
	Type        json.Number `json:"type"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	PublishDate string      `json:"publishDate"` // "YYYY-MM-DD HH:MM:SS"
	URL         string      `json:"url"`
}

// Page fetches one page of report metadata.
func (s *ComeinSource) Page(ctx context.Context, page int) ([]model.Record, error) {
	payload := comeinRequest{
		PageStart: page - 1,
		PageNum:   s.pageSize,
		FullCode:  s.cfg.FullCode,
	}

	var resp comeinResponse
	if err := s.client.PostJSON(ctx, s.cfg.ListAPIURL, payload, &resp); err != nil {
		return nil, fmt.Errorf("list page %d: %w", page, err)
	}
	if resp.Code != "0" {
		return nil, fmt.Errorf("list page %d: API code %s", page, resp.Code)
	}

	records := make([]model.Record, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		records = append(records, s.record(row))
	}
	return records, nil
}

func (s *ComeinSource) record(row comeinRow) model.Record {
	meta := model.DocumentMeta{
		ID:          row.ID.String(),
		Title:       row.Title,
		Author:      row.Author,
		PublishDate: dateOnly(row.PublishDate),
	}

	switch {
	case row.URL == "":
		// No direct URL: the report only exists as a rendered detail page
		id := row.ReportID.String()
		if id == "" {
			id = row.ID.String()
		}
		detail := fmt.Sprintf("%s?id=%s&type=%s&storeId=%s", s.cfg.DetailBaseURL, id, row.Type.String(), s.cfg.StoreID)
		meta.SourceURL = detail
		meta.Origin = model.OriginHTML
		return model.Record{Meta: meta, ContentURL: detail}

	case strings.Contains(row.URL, "/report/detail"):
		meta.SourceURL = row.URL
		meta.Origin = model.OriginHTML
		return model.Record{Meta: meta, ContentURL: row.URL}

	default:
		meta.SourceURL = row.URL
		meta.Origin = model.OriginPDF
		return model.Record{Meta: meta, ContentURL: s.previewURL(row.URL)}
	}
}

// previewURL wraps a raw document URL into the file-view preview endpoint
// that serves the PDF bytes directly.
func (s *ComeinSource) previewURL(raw string) string {
	if strings.Contains(raw, "onlinePreview") {
		return raw
	}
	b64 := base64.URLEncoding.EncodeToString([]byte(raw))
	return s.cfg.PreviewURL + "?url=" + b64 +
		"&officePreviewSwitchDisabled=true&officePreviewType=pdf&watermarkTxt="
}

// dateOnly strips the time-of-day part from the API's publish date.
func dateOnly(publishDate string) string {
	fields := strings.Fields(publishDate)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
