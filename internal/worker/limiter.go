package worker

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter applies per-host rate limits so a crawl over one IR site does
// not hammer it while documents hosted elsewhere proceed at full speed.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter with the given default per-host rate.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 2
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the host of rawURL may be contacted again.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := hostOf(rawURL)
	if err != nil {
		return err
	}
	return l.limiterFor(host).Wait(ctx)
}

// Allow reports whether a request to the host would be admitted right now.
func (l *Limiter) Allow(rawURL string) bool {
	host, err := hostOf(rawURL)
	if err != nil {
		return false
	}
	return l.limiterFor(host).Allow()
}

// SetHostRate overrides the rate for one host, e.g. from a robots.txt
// crawl delay.
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.mu.Lock()
	l.limiters[host] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	l.mu.Unlock()
}

func (l *Limiter) limiterFor(host string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[host]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.limiters[host]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[host] = lim
	return lim
}

func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}
