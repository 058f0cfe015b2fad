package source

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mwei/irdigest/internal/model"
)

// fakeClient serves canned bodies by URL and canned JSON for POSTs.
type fakeClient struct {
	bodies   map[string]string
	postResp string
	lastPost any
	postURL  string
}

func (c *fakeClient) GetBody(ctx context.Context, url string) ([]byte, error) {
	body, ok := c.bodies[url]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	return []byte(body), nil
}

func (c *fakeClient) PostJSON(ctx context.Context, url string, payload, out any) error {
	c.postURL = url
	c.lastPost = payload
	return json.Unmarshal([]byte(c.postResp), out)
}

func comeinConfig() model.CompanyConfig {
	return model.CompanyConfig{
		FullCode:      "002460.SZ",
		Kind:          model.SourceComein,
		ListAPIURL:    "https://store.example.com/api/list",
		DetailBaseURL: "https://store.example.com/report/detail",
		PreviewURL:    "https://store.example.com/fileview/onlinePreview",
		StoreID:       "77",
	}
}

func TestComein_PageRequestShape(t *testing.T) {
	client := &fakeClient{postResp: `{"code":"0","rows":[]}`}
	src := NewComeinSource("ganfeng", comeinConfig(), client, 10)

	if _, err := src.Page(context.Background(), 3); err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	req, ok := client.lastPost.(comeinRequest)
	if !ok {
		t.Fatalf("Expected comeinRequest payload, got %T", client.lastPost)
	}
	if req.PageStart != 2 {
		t.Errorf("Expected 0-based pagestart 2 for page 3, got %d", req.PageStart)
	}
	if req.PageNum != 10 {
		t.Errorf("Expected pagenum 10, got %d", req.PageNum)
	}
	if req.FullCode != "002460.SZ" {
		t.Errorf("Expected fullCode forwarded, got %q", req.FullCode)
	}
	if client.postURL != "https://store.example.com/api/list" {
		t.Errorf("Posted to wrong URL: %s", client.postURL)
	}
}

func TestComein_PDFRowGetsPreviewWrapper(t *testing.T) {
	raw := "https://files.example.com/reports/q2.pdf"
	client := &fakeClient{postResp: `{"code":"0","rows":[
		{"id":101,"reportId":9001,"title":"Q2 report","author":"IR dept",
		 "publishDate":"2024-07-15 09:30:00","url":"` + raw + `","type":1}
	]}`}
	src := NewComeinSource("ganfeng", comeinConfig(), client, 10)

	recs, err := src.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(recs))
	}

	rec := recs[0]
	if rec.Meta.Origin != model.OriginPDF {
		t.Errorf("Expected PDF origin, got %s", rec.Meta.Origin)
	}
	if rec.Meta.PublishDate != "2024-07-15" {
		t.Errorf("Expected date without time, got %q", rec.Meta.PublishDate)
	}
	if rec.Meta.SourceURL != raw {
		t.Errorf("Expected source URL kept raw, got %q", rec.Meta.SourceURL)
	}

	wantB64 := base64.URLEncoding.EncodeToString([]byte(raw))
	if !strings.Contains(rec.ContentURL, "onlinePreview?url="+wantB64) {
		t.Errorf("Expected base64 preview wrapper, got %q", rec.ContentURL)
	}
	if !strings.Contains(rec.ContentURL, "officePreviewType=pdf") {
		t.Errorf("Expected preview type parameter, got %q", rec.ContentURL)
	}
}

func TestComein_PreviewURLPassedThrough(t *testing.T) {
	wrapped := "https://store.example.com/fileview/onlinePreview?url=abc"
	client := &fakeClient{postResp: `{"code":"0","rows":[
		{"id":1,"title":"t","publishDate":"2024-01-01 00:00:00","url":"` + wrapped + `","type":1}
	]}`}
	src := NewComeinSource("ganfeng", comeinConfig(), client, 10)

	recs, err := src.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if recs[0].ContentURL != wrapped {
		t.Errorf("Expected already-wrapped URL unchanged, got %q", recs[0].ContentURL)
	}
}

func TestComein_URLLessRowBuildsDetailURL(t *testing.T) {
	client := &fakeClient{postResp: `{"code":"0","rows":[
		{"id":202,"reportId":8802,"title":"briefing","publishDate":"2024-03-02 10:00:00","url":"","type":2}
	]}`}
	src := NewComeinSource("ganfeng", comeinConfig(), client, 10)

	recs, err := src.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	rec := recs[0]
	if rec.Meta.Origin != model.OriginHTML {
		t.Errorf("Expected HTML origin for URL-less row, got %s", rec.Meta.Origin)
	}
	want := "https://store.example.com/report/detail?id=8802&type=2&storeId=77"
	if rec.ContentURL != want {
		t.Errorf("Expected detail URL %q, got %q", want, rec.ContentURL)
	}
}

func TestComein_DetailRowStaysHTML(t *testing.T) {
	detail := "https://store.example.com/report/detail?id=5"
	client := &fakeClient{postResp: `{"code":"0","rows":[
		{"id":5,"title":"t","publishDate":"2024-01-01 00:00:00","url":"` + detail + `","type":1}
	]}`}
	src := NewComeinSource("ganfeng", comeinConfig(), client, 10)

	recs, err := src.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if recs[0].Meta.Origin != model.OriginHTML {
		t.Errorf("Expected HTML origin for detail URL, got %s", recs[0].Meta.Origin)
	}
	if recs[0].ContentURL != detail {
		t.Errorf("Expected detail URL unchanged, got %q", recs[0].ContentURL)
	}
}

func TestComein_NonZeroCodeFails(t *testing.T) {
	client := &fakeClient{postResp: `{"code":"500","rows":[]}`}
	src := NewComeinSource("ganfeng", comeinConfig(), client, 10)

	if _, err := src.Page(context.Background(), 1); err == nil {
		t.Error("Expected error for non-zero API code")
	}
}

func TestComein_EmptyPageMeansExhausted(t *testing.T) {
	client := &fakeClient{postResp: `{"code":"0","rows":[]}`}
	src := NewComeinSource("ganfeng", comeinConfig(), client, 10)

	recs, err := src.Page(context.Background(), 99)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Expected empty slice, got %d records", len(recs))
	}
}
