package worker

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaultBurst applies when a non-positive burst is configured
const defaultBurst = 5

// Limiter keeps one token bucket per host. Hosts are normalized so that
// "www.example.com" and "example.com" share a bucket.
type Limiter struct {
	buckets      sync.Map // host -> *rate.Limiter
	defaultRate  rate.Limit
	defaultBurst int
	mu           sync.Mutex // serializes bucket replacement
}

// NewLimiter creates a limiter. A non-positive rate disables limiting.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = defaultBurst
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Limiter{defaultRate: limit, defaultBurst: burst}
}

// Wait blocks until the URL's host may be contacted
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := Host(rawURL)
	if err != nil {
		return err
	}
	return l.bucket(host).Wait(ctx)
}

// Allow takes a token for the URL's host without waiting
func (l *Limiter) Allow(rawURL string) bool {
	host, err := Host(rawURL)
	if err != nil {
		return false
	}
	return l.bucket(host).Allow()
}

func (l *Limiter) bucket(host string) *rate.Limiter {
	if b, ok := l.buckets.Load(host); ok {
		return b.(*rate.Limiter)
	}
	b, _ := l.buckets.LoadOrStore(host, rate.NewLimiter(l.defaultRate, l.defaultBurst))
	return b.(*rate.Limiter)
}

// SetHostRate replaces the bucket of one host
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets.Store(normalizeHost(host), rate.NewLimiter(rate.Limit(requestsPerSecond), burst))
}

// SetCrawlDelay slows a host to one request per delay (a robots.txt
// Crawl-delay). Buckets that are already slower are left alone.
func (l *Limiter) SetCrawlDelay(rawURL string, delay time.Duration) {
	if delay <= 0 {
		return
	}
	host, err := Host(rawURL)
	if err != nil {
		return
	}

	every := rate.Every(delay)
	l.mu.Lock()
	defer l.mu.Unlock()
	if current := l.bucket(host); current.Limit() <= every && current.Burst() <= 1 {
		return
	}
	l.buckets.Store(host, rate.NewLimiter(every, 1))
}

// Host returns the normalized host of a URL ("www." stripped, lower case)
func Host(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return normalizeHost(parsed.Hostname()), nil
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
