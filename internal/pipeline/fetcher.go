package pipeline

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mwei/irdigest/internal/cache"
	"github.com/mwei/irdigest/internal/model"
	"github.com/mwei/irdigest/internal/util"
	"github.com/mwei/irdigest/internal/worker"
)

const fetchMaxAttempts = 3

// Overridable for fast tests
var fetchSleepFunc = time.Sleep

// ErrBlockedByRobots marks URLs the site's robots.txt disallows.
var ErrBlockedByRobots = errors.New("blocked by robots.txt")

// Fetcher retrieves document bodies over HTTP with caching, per-host rate
// limiting, robots.txt enforcement and retry on transient failures. The
// cache, limiter and robots checker are all optional.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	store      cache.Cache
	cacheTTL   time.Duration
	limiter    *worker.Limiter
	robots     *util.RobotsChecker
}

// NewFetcher builds a fetcher from the HTTP section of the config.
func NewFetcher(cfg model.HTTPConfig, store cache.Cache, cacheTTL time.Duration, limiter *worker.Limiter, robots *util.RobotsChecker) *Fetcher {
	transport := http.DefaultTransport
	if cfg.InsecureTLS {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		store:     store,
		cacheTTL:  cacheTTL,
		limiter:   limiter,
		robots:    robots,
	}
}

// GetBody retrieves the body at rawURL, consulting the cache first. Fresh
// fetches pass robots.txt and the per-host rate limiter, retry transient
// errors, and populate the cache on success.
func (f *Fetcher) GetBody(ctx context.Context, rawURL string) ([]byte, error) {
	if f.store != nil {
		if entry, ok := f.store.Get(cache.Key(rawURL)); ok {
			return entry.Body, nil
		}
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrBlockedByRobots)
		}
		if delay > 0 {
			fetchSleepFunc(delay)
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	body, contentType, err := f.fetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if f.store != nil {
		entry := cache.Entry{
			Body:        body,
			ContentType: contentType,
			FetchedAt:   time.Now(),
		}
		if err := f.store.Set(cache.Key(rawURL), entry, f.cacheTTL); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed for %s: %v\n", rawURL, err)
		}
	}

	return body, nil
}

// PostJSON posts payload as JSON and decodes the response into out. POST
// responses are never cached.
func (f *Fetcher) PostJSON(ctx context.Context, rawURL string, payload, out any) error {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	var body []byte
	for attempt := 1; ; attempt++ {
		body, err = f.post(ctx, rawURL, encoded)
		if err == nil {
			break
		}
		if attempt >= fetchMaxAttempts || !isRetryableFetchError(err) {
			return err
		}
		fetchSleepFunc(backoff(attempt))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, rawURL string) ([]byte, string, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchMaxAttempts; attempt++ {
		body, contentType, err := f.fetch(ctx, rawURL)
		if err == nil {
			return body, contentType, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) {
			return nil, "", err
		}
		if attempt < fetchMaxAttempts {
			fetchSleepFunc(backoff(attempt))
		}
	}
	return nil, "", lastErr
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

func (f *Fetcher) post(ctx context.Context, rawURL string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func backoff(attempt int) time.Duration {
	return time.Duration(attempt) * time.Second
}

// isRetryableFetchError reports whether a fetch error is worth retrying:
// 5xx statuses, 429, and transport-level connection failures.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	if strings.Contains(msg, "unexpected status:") {
		for _, code := range []string{" 500", " 502", " 503", " 504", " 429"} {
			if strings.Contains(msg, "unexpected status:"+code) {
				return true
			}
		}
		return false
	}

	if strings.HasPrefix(msg, "fetch:") {
		return true
	}

	return false
}
