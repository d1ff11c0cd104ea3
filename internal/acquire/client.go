// Package acquire resolves search redirects and fetches documents as
// plain text, reading through the document cache.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ppiankov/aidtrace/internal/cache"
	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/worker"
)

// fetchSleepFunc is swapped out in tests
var fetchSleepFunc = time.Sleep

// Client fetches documents. It is safe for concurrent use; one client is
// shared by all workers of a run.
type Client struct {
	httpClient *http.Client
	cfg        model.HTTPConfig
	skipPDF    bool
	store      cache.Store
	limiter    *worker.Limiter
	robots     *RobotsChecker
	group      singleflight.Group
	logger     *zap.Logger
	now        func() time.Time
	isSearch   func(string) bool
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the HTTP client (tests use the httptest client)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithClock replaces the time source used for FetchedAt
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithSearchMatcher replaces the search-page detector used by
// ResolveRedirect
func WithSearchMatcher(match func(string) bool) Option {
	return func(c *Client) {
		if match != nil {
			c.isSearch = match
		}
	}
}

// NewClient creates a client. A nil store disables caching.
func NewClient(httpCfg model.HTTPConfig, acqCfg model.AcquireConfig, store cache.Store, opts ...Option) *Client {
	if store == nil {
		store = cache.NopStore{}
	}

	c := &Client{
		cfg:      httpCfg,
		skipPDF:  acqCfg.SkipPDF,
		store:    store,
		limiter:  worker.NewLimiter(httpCfg.RequestsPerSecond, httpCfg.Burst),
		logger:   zap.NewNop(),
		now:      time.Now,
		isSearch: IsSearchURL,
	}
	c.httpClient = &http.Client{
		Timeout: httpCfg.Timeout,
		Transport: &http.Transport{
			Proxy:               NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			MaxIdleConns:        64,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("stopped after 5 redirects")
			}
			return nil
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if httpCfg.RespectRobots {
		c.robots = NewRobotsChecker(c.httpClient, httpCfg.UserAgent)
	}
	return c
}

// Fetch returns the document at rawURL as text. A cache hit performs no
// network activity; concurrent misses for one URL share a single request.
func (c *Client) Fetch(ctx context.Context, rawURL string) (model.CachedDocument, error) {
	key := cache.CacheKey(rawURL)
	if doc, ok := c.store.Get(key); ok {
		return doc, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		if doc, ok := c.store.Get(key); ok {
			return doc, nil
		}

		// The shared request must not fail because one waiter gave up
		fetchCtx := context.WithoutCancel(ctx)
		if d := c.fetchTimeout(); d > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, d)
			defer cancel()
		}

		doc, err := c.fetchDocument(fetchCtx, rawURL)
		if err != nil {
			return model.CachedDocument{}, err
		}
		if err := c.store.Put(key, doc); err != nil {
			c.logger.Warn("cache write failed", zap.String("url", rawURL), zap.Error(err))
		}
		return doc, nil
	})

	select {
	case <-ctx.Done():
		return model.CachedDocument{}, newFetchError(ErrNetwork, rawURL, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return model.CachedDocument{}, res.Err
		}
		return res.Val.(model.CachedDocument), nil
	}
}

// fetchTimeout bounds one shared fetch: every attempt plus the longest
// backoff between them. Zero means no bound.
func (c *Client) fetchTimeout() time.Duration {
	if c.cfg.Timeout <= 0 {
		return 0
	}
	attempts := max(c.cfg.MaxAttempts, 1)
	total := c.cfg.Timeout * time.Duration(attempts)
	for a := 1; a < attempts; a++ {
		total += time.Duration(float64(c.cfg.Backoff) * math.Pow(2, float64(a-1)) * 1.25)
	}
	return total
}

func (c *Client) fetchDocument(ctx context.Context, rawURL string) (model.CachedDocument, error) {
	body, contentType, err := c.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return model.CachedDocument{}, err
	}

	doc := model.CachedDocument{FetchedAt: c.now().UTC()}
	if IsPDF(contentType, rawURL, body) {
		if c.skipPDF {
			return model.CachedDocument{}, newFetchError(ErrUnsupported, rawURL, errors.New("pdf parsing disabled"))
		}
		text, err := PDFText(body)
		if err != nil {
			return model.CachedDocument{}, newFetchError(ErrDecode, rawURL, err)
		}
		doc.Kind, doc.Text = model.KindPDF, text
	} else {
		text, err := HTMLText(body, contentType)
		if err != nil {
			return model.CachedDocument{}, newFetchError(ErrDecode, rawURL, err)
		}
		doc.Kind, doc.Text = model.KindHTML, text
	}

	if doc.Text == "" {
		return model.CachedDocument{}, newFetchError(ErrEmpty, rawURL, nil)
	}
	return doc, nil
}

// FetchWithRetry performs a GET, retrying retryable failures with
// exponential backoff. It returns the body and content type.
func (c *Client) FetchWithRetry(ctx context.Context, rawURL string) ([]byte, string, error) {
	attempts := c.cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, contentType, err := c.get(ctx, rawURL)
		if err == nil {
			return body, contentType, nil
		}
		lastErr = err

		if ctx.Err() != nil || !isRetryableFetchError(err) || attempt == attempts {
			break
		}

		delay := c.backoff(attempt)
		c.logger.Debug("retrying fetch",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		fetchSleepFunc(delay)
	}
	return nil, "", lastErr
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	if c.robots != nil {
		allowed, delay, err := c.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, "", newFetchError(ErrNetwork, rawURL, err)
		}
		if !allowed {
			return nil, "", newFetchError(ErrDisallowed, rawURL, nil)
		}
		c.limiter.SetCrawlDelay(rawURL, delay)
	}
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, "", newFetchError(ErrNetwork, rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", newFetchError(ErrNetwork, rawURL, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", newFetchError(ErrNetwork, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", statusError(rawURL, resp.StatusCode)
	}

	reader := io.Reader(resp.Body)
	if c.cfg.MaxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, c.cfg.MaxBodyBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", newFetchError(ErrNetwork, rawURL, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// backoff returns base * 2^(attempt-1) with ±25% jitter
func (c *Client) backoff(attempt int) time.Duration {
	base := c.cfg.Backoff
	if base <= 0 {
		return 0
	}
	delay := float64(base) * math.Pow(2, float64(attempt-1))
	delay += (rand.Float64()*2 - 1) * delay * 0.25
	return time.Duration(delay)
}

// isRetryableFetchError reports whether a failure is transient: network
// errors, 5xx and 429.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		var netErr net.Error
		return errors.As(err, &netErr)
	}

	switch fe.Kind {
	case ErrStatus:
		return fe.StatusCode == http.StatusTooManyRequests || fe.StatusCode >= 500
	case ErrNetwork:
		return !errors.Is(fe.Err, context.Canceled)
	default:
		return false
	}
}
