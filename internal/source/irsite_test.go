package source

import (
	"context"
	"testing"

	"github.com/mwei/irdigest/internal/model"
)

func irsiteConfig() model.CompanyConfig {
	return model.CompanyConfig{
		Kind:            model.SourceIRSite,
		BaseURL:         "https://ir.example.com",
		AnnouncementURL: "https://ir.example.com/announcements?page=%d",
		PerformanceURL:  "https://ir.example.com/performance?page=%d",
	}
}

const announcementListing = `<html><body>
<div class="irggfl"><a class="irfont" href="/detail/1001">锂价季度公告</a></div>
<div class="irggfl"><a class="irfont" href="https://ir.example.com/detail/1002">产能扩建公告</a></div>
</body></html>`

const detail1001 = `<html><body>
<div class="dettime">发布时间：2024-06-20</div>
<a href="/files/1001.PDF">下载</a>
</body></html>`

const detail1002 = `<html><body>
<div class="dettime">2024-06-18</div>
<a href="/about">关于我们</a>
<a href="https://files.example.com/1002.pdf">附件</a>
</body></html>`

func TestIRSite_AnnouncementsPage(t *testing.T) {
	client := &fakeClient{bodies: map[string]string{
		"https://ir.example.com/announcements?page=1": announcementListing,
		"https://ir.example.com/detail/1001":          detail1001,
		"https://ir.example.com/detail/1002":          detail1002,
	}}
	src, err := NewIRSiteSource("weilai", irsiteConfig(), client, SectionAnnouncements)
	if err != nil {
		t.Fatalf("NewIRSiteSource failed: %v", err)
	}

	recs, err := src.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recs))
	}

	first := recs[0]
	if first.Meta.Title != "锂价季度公告" {
		t.Errorf("Expected listing title, got %q", first.Meta.Title)
	}
	if first.Meta.PublishDate != "2024-06-20" {
		t.Errorf("Expected date with prefix stripped, got %q", first.Meta.PublishDate)
	}
	if first.ContentURL != "https://ir.example.com/files/1001.PDF" {
		t.Errorf("Expected resolved PDF URL, got %q", first.ContentURL)
	}
	if first.Meta.Origin != model.OriginPDF {
		t.Errorf("Expected PDF origin, got %s", first.Meta.Origin)
	}
	if first.Meta.SourceURL != "https://ir.example.com/detail/1001" {
		t.Errorf("Expected detail page as source URL, got %q", first.Meta.SourceURL)
	}

	second := recs[1]
	if second.Meta.PublishDate != "2024-06-18" {
		t.Errorf("Expected bare date kept as-is, got %q", second.Meta.PublishDate)
	}
	if second.ContentURL != "https://files.example.com/1002.pdf" {
		t.Errorf("Expected absolute PDF URL untouched, got %q", second.ContentURL)
	}
}

func TestIRSite_PerformanceSelectors(t *testing.T) {
	listing := `<html><body>
<div class="iryeji"><a class="iryejia" href="/detail/2001">年度业绩发布</a></div>
<div class="irggfl"><a class="irfont" href="/detail/9999">ignored announcement</a></div>
</body></html>`
	detail := `<html><body>
<div class="dettime">发布时间：2024-04-01</div>
<a href="/files/2001.pdf">PDF</a>
</body></html>`

	client := &fakeClient{bodies: map[string]string{
		"https://ir.example.com/performance?page=1": listing,
		"https://ir.example.com/detail/2001":        detail,
	}}
	src, err := NewIRSiteSource("weilai", irsiteConfig(), client, SectionPerformance)
	if err != nil {
		t.Fatalf("NewIRSiteSource failed: %v", err)
	}

	recs, err := src.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Expected 1 record (announcement rows skipped), got %d", len(recs))
	}
	if recs[0].Meta.Title != "年度业绩发布" {
		t.Errorf("Expected performance title, got %q", recs[0].Meta.Title)
	}
}

func TestIRSite_DetailWithoutPDFSkipped(t *testing.T) {
	listing := `<html><body>
<div class="irggfl"><a class="irfont" href="/detail/3001">纯网页公告</a></div>
</body></html>`
	detail := `<html><body>
<div class="dettime">发布时间：2024-05-05</div>
<a href="/about">no attachment here</a>
</body></html>`

	client := &fakeClient{bodies: map[string]string{
		"https://ir.example.com/announcements?page=1": listing,
		"https://ir.example.com/detail/3001":          detail,
	}}
	src, err := NewIRSiteSource("weilai", irsiteConfig(), client, SectionAnnouncements)
	if err != nil {
		t.Fatalf("NewIRSiteSource failed: %v", err)
	}

	recs, err := src.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Expected no records for detail without PDF, got %d", len(recs))
	}
}

func TestIRSite_MissingSectionURL(t *testing.T) {
	cfg := irsiteConfig()
	cfg.PerformanceURL = ""
	if _, err := NewIRSiteSource("weilai", cfg, &fakeClient{}, SectionPerformance); err == nil {
		t.Error("Expected error when section has no listing URL")
	}
}

func TestParseSection(t *testing.T) {
	if s, err := ParseSection("Announcements"); err != nil || s != SectionAnnouncements {
		t.Errorf("Expected announcements section, got %q err %v", s, err)
	}
	if s, err := ParseSection("performance"); err != nil || s != SectionPerformance {
		t.Errorf("Expected performance section, got %q err %v", s, err)
	}
	if _, err := ParseSection("news"); err == nil {
		t.Error("Expected error for unknown section")
	}
}
