package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwei/irdigest/internal/cache"
	"github.com/mwei/irdigest/internal/model"
	"github.com/mwei/irdigest/internal/pipeline"
	"github.com/mwei/irdigest/internal/source"
	"github.com/mwei/irdigest/internal/util"
	"github.com/mwei/irdigest/internal/worker"
)

var (
	crawlKeywords  []string
	crawlSection   string
	crawlFrom      string
	crawlTo        string
	crawlOutputDir string
	crawlWorkers   int
	requireCJK     bool
	saveOriginals  bool
	noCache        bool
	crawlTimeout   time.Duration
	userAgent      string
	maxBytes       int64
	insecureTLS    bool
	ignoreRobots   bool
	llmEnabled     bool
	llmModel       string
	llmBaseURL     string
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl configured companies and write keyword digests",
	Long: `Crawl pages through each configured company's document listing,
downloads the documents (PDF or HTML), and writes one highlighted .docx
digest per keyword.

Companies are defined in the config file; see 'irdigest config init'.

Example:
  irdigest crawl -k 碳酸锂 -k 产能
  irdigest crawl -k 碳酸锂 --section performance --from 2024-01-01 --to 2024-06-30
  irdigest crawl -k lithium --llm --llm-model gpt-4o-mini`,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringArrayVarP(&crawlKeywords, "keyword", "k", nil, "keyword to match (repeatable)")
	crawlCmd.Flags().StringVar(&crawlSection, "section", "announcements", "site section (announcements, performance)")
	crawlCmd.Flags().StringVar(&crawlFrom, "from", "", "earliest publish date, inclusive (YYYY-MM-DD)")
	crawlCmd.Flags().StringVar(&crawlTo, "to", "", "latest publish date, inclusive (YYYY-MM-DD)")
	crawlCmd.Flags().StringVarP(&crawlOutputDir, "output-dir", "o", "", "digest output directory (default from config)")
	crawlCmd.Flags().IntVar(&crawlWorkers, "workers", 0, "concurrent document fetches (default from config)")
	crawlCmd.Flags().BoolVar(&requireCJK, "require-cjk", false, "keep only paragraphs containing CJK text")
	crawlCmd.Flags().BoolVar(&saveOriginals, "save-originals", false, "archive fetched originals next to the digests")

	// HTTP flags
	crawlCmd.Flags().DurationVar(&crawlTimeout, "timeout", 30*time.Second, "per-request HTTP timeout")
	crawlCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	crawlCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read (default from config)")
	crawlCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetches)")
	crawlCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	crawlCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "skip robots.txt checks")

	// LLM flags
	crawlCmd.Flags().BoolVar(&llmEnabled, "llm", false, "add an LLM summary to each digest")
	crawlCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	crawlCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "OpenAI-compatible endpoint (e.g. local Ollama)")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	if len(crawlKeywords) == 0 {
		return fmt.Errorf("at least one --keyword is required")
	}

	section, err := source.ParseSection(crawlSection)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCrawlFlags(cmd, cfg)

	if len(cfg.Companies) == 0 {
		return fmt.Errorf("no companies configured; run 'irdigest config init' and edit the companies section")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Companies: %d\n", len(cfg.Companies))
		fmt.Fprintf(os.Stderr, "Keywords: %v\n", crawlKeywords)
		fmt.Fprintf(os.Stderr, "Section: %s\n", section)
		if crawlFrom != "" || crawlTo != "" {
			fmt.Fprintf(os.Stderr, "Window: %s .. %s\n", crawlFrom, crawlTo)
		}
		fmt.Fprintln(os.Stderr)
	}

	crawler := pipeline.NewCrawler(cfg, buildFetcher(cfg))

	stats, err := crawler.Run(context.Background(), pipeline.Options{
		Keywords: crawlKeywords,
		Section:  section,
		FromDate: crawlFrom,
		ToDate:   crawlTo,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %d documents (%d failed)\n", stats.Documents, stats.Failed)
	for _, path := range stats.Digests {
		fmt.Printf("✓ Wrote %s\n", path)
	}
	if len(stats.Digests) == 0 {
		fmt.Println("No matches; no digests written.")
	}
	return nil
}

// applyCrawlFlags overlays explicitly-set flags on the loaded config.
func applyCrawlFlags(cmd *cobra.Command, cfg *model.Config) {
	if cmd.Flags().Changed("timeout") {
		cfg.HTTP.Timeout = crawlTimeout
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	cfg.HTTP.InsecureTLS = cfg.HTTP.InsecureTLS || insecureTLS
	if ignoreRobots {
		cfg.HTTP.RespectRobots = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if crawlOutputDir != "" {
		cfg.Output.Dir = crawlOutputDir
	}
	if crawlWorkers > 0 {
		cfg.Concurrency.Workers = crawlWorkers
	}
	cfg.Crawl.RequireCJK = cfg.Crawl.RequireCJK || requireCJK
	cfg.Crawl.SaveOriginals = cfg.Crawl.SaveOriginals || saveOriginals

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if llmBaseURL != "" {
			cfg.LLM.BaseURL = llmBaseURL
		}
	}
}

// buildFetcher assembles the fetcher with cache, rate limiter and robots
// checker per the config.
func buildFetcher(cfg *model.Config) *pipeline.Fetcher {
	var store cache.Cache
	var cacheTTL time.Duration
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		cacheTTL = cfg.Cache.DiskTTL
	}

	limiter := worker.NewLimiter(cfg.HTTP.RatePerSec, cfg.HTTP.RateBurst)

	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return pipeline.NewFetcher(cfg.HTTP, store, cacheTTL, limiter, robots)
}
