package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker enforces robots.txt on crawled IR sites. Parsed files are
// cached per host for the lifetime of the checker (one crawl run).
type RobotsChecker struct {
	cache      map[string]*robotstxt.RobotsData
	mu         sync.RWMutex
	httpClient *http.Client
	userAgent  string
}

// NewRobotsChecker creates a checker identifying itself as userAgent.
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		cache:      make(map[string]*robotstxt.RobotsData),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// CanFetch reports whether rawURL may be fetched and any crawl delay the
// site requests. When robots.txt itself cannot be retrieved the fetch is
// allowed; sites that want crawling blocked serve the file.
func (r *RobotsChecker) CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}

	data, err := r.robotsData(ctx, parsed)
	if err != nil {
		return true, 0, nil
	}

	allowed := data.TestAgent(parsed.Path, r.userAgent)

	var delay time.Duration
	if group := data.FindGroup(r.userAgent); group != nil {
		delay = group.CrawlDelay
	}

	return allowed, delay, nil
}

func (r *RobotsChecker) robotsData(ctx context.Context, parsed *url.URL) (*robotstxt.RobotsData, error) {
	r.mu.RLock()
	data, ok := r.cache[parsed.Host]
	r.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// A missing robots.txt allows everything
	if resp.StatusCode == http.StatusNotFound {
		data, _ := robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)
		r.store(parsed.Host, data)
		return data, nil
	}

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.store(parsed.Host, data)
	return data, nil
}

func (r *RobotsChecker) store(host string, data *robotstxt.RobotsData) {
	r.mu.Lock()
	r.cache[host] = data
	r.mu.Unlock()
}

// Clear drops all cached robots.txt data.
func (r *RobotsChecker) Clear() {
	r.mu.Lock()
	r.cache = make(map[string]*robotstxt.RobotsData)
	r.mu.Unlock()
}
