package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete runtime configuration
type Config struct {
	HTTP        HTTPConfig               `yaml:"http" json:"http"`
	Cache       CacheConfig              `yaml:"cache" json:"cache"`
	Crawl       CrawlConfig              `yaml:"crawl" json:"crawl"`
	Concurrency ConcurrencyConfig        `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig             `yaml:"output" json:"output"`
	LLM         LLMConfig                `yaml:"llm" json:"llm"`
	Companies   map[string]CompanyConfig `yaml:"companies" json:"companies"`
}

// HTTPConfig controls the document fetcher
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" json:"insecure_tls"`
	RatePerSec    float64       `yaml:"rate_per_sec" json:"rate_per_sec"` // Per-host request rate
	RateBurst     int           `yaml:"rate_burst" json:"rate_burst"`
	RespectRobots bool          `yaml:"respect_robots" json:"respect_robots"`
}

// CacheConfig controls the fetched-body cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// CrawlConfig controls listing pagination and paragraph filtering
type CrawlConfig struct {
	PageSize      int    `yaml:"page_size" json:"page_size"`
	RequireCJK    bool   `yaml:"require_cjk" json:"require_cjk"`       // Keep only paragraphs with CJK text (opt-in)
	SaveOriginals bool   `yaml:"save_originals" json:"save_originals"` // Archive fetched originals
	OriginalsDir  string `yaml:"originals_dir" json:"originals_dir"`
	PDFConverter  string `yaml:"pdf_converter" json:"pdf_converter"` // External pdf-to-text binary
}

// ConcurrencyConfig controls the fetch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// OutputConfig controls digest rendering
type OutputConfig struct {
	Dir     string `yaml:"dir" json:"dir"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// LLMConfig configures the optional digest summarizer.
// Summaries never influence matching or result contents.
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"`
	BaseURL   string `yaml:"base_url" json:"base_url"` // OpenAI-compatible endpoints (e.g. Ollama)
	Timeout   int    `yaml:"timeout" json:"timeout"`   // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// SourceKind selects the adapter used to list a company's documents
type SourceKind string

const (
	SourceComein SourceKind = "comein" // JSON report-list API
	SourceIRSite SourceKind = "irsite" // Paged HTML listing on the company's IR site
)

// CompanyConfig describes one configured company
type CompanyConfig struct {
	FullCode string     `yaml:"full_code" json:"full_code"` // Exchange-prefixed stock code, e.g. sz002738
	Kind     SourceKind `yaml:"kind" json:"kind"`

	// comein source
	ListAPIURL    string `yaml:"list_api_url,omitempty" json:"list_api_url,omitempty"`
	DetailBaseURL string `yaml:"detail_base_url,omitempty" json:"detail_base_url,omitempty"`
	PreviewURL    string `yaml:"preview_url,omitempty" json:"preview_url,omitempty"`
	StoreID       string `yaml:"store_id,omitempty" json:"store_id,omitempty"`

	// irsite source; listing URLs contain a %d page placeholder
	BaseURL         string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	AnnouncementURL string `yaml:"announcement_url,omitempty" json:"announcement_url,omitempty"`
	PerformanceURL  string `yaml:"performance_url,omitempty" json:"performance_url,omitempty"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	cacheDir := ".irdigest-cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".irdigest", "cache")
	}

	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "irdigest/0.2 (+https://github.com/mwei/irdigest)",
			MaxBodyBytes:  20_000_000,
			RatePerSec:    2,
			RateBurst:     4,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Crawl: CrawlConfig{
			PageSize:     10,
			OriginalsDir: "originals",
			PDFConverter: "pdftotext",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir: "digests",
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 600,
		},
		Companies: map[string]CompanyConfig{},
	}
}
