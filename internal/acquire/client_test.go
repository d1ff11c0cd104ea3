package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/aidtrace/internal/cache"
	"github.com/ppiankov/aidtrace/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "test-agent",
		MaxBodyBytes: 1 << 20,
		MaxAttempts:  3,
		Backoff:      time.Millisecond,
	}
}

func noSleep(t *testing.T) {
	t.Helper()
	orig := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	t.Cleanup(func() { fetchSleepFunc = orig })
}

func newTestClient(t *testing.T, srv *httptest.Server, store cache.Store, acq model.AcquireConfig) *Client {
	t.Helper()
	return NewClient(testHTTPConfig(), acq, store, WithHTTPClient(srv.Client()))
}

func TestFetchWithRetry_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	c := newTestClient(t, server, nil, model.AcquireConfig{})
	body, ctype, err := c.FetchWithRetry(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html><body>OK</body></html>", string(body))
	assert.Equal(t, "text/html", ctype)
}

func TestFetchWithRetry_TransientThenSuccess(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "<html>OK</html>")
	}))
	defer server.Close()

	c := newTestClient(t, server, nil, model.AcquireConfig{})
	body, _, err := c.FetchWithRetry(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>OK</html>", string(body))
	assert.Equal(t, int32(3), attempts.Load())
}

func TestFetchWithRetry_429Retried(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = fmt.Fprint(w, "<html>OK</html>")
	}))
	defer server.Close()

	c := newTestClient(t, server, nil, model.AcquireConfig{})
	_, _, err := c.FetchWithRetry(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestFetchWithRetry_AllRetriesExhausted(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := newTestClient(t, server, nil, model.AcquireConfig{})
	_, _, err := c.FetchWithRetry(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, int32(3), attempts.Load())

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ErrStatus, fe.Kind)
	assert.Equal(t, http.StatusBadGateway, fe.StatusCode)
}

func TestFetchWithRetry_PermanentFailure(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(t, server, nil, model.AcquireConfig{})
	_, _, err := c.FetchWithRetry(context.Background(), server.URL)
	require.Error(t, err)
	// 404 is not retryable
	assert.Equal(t, int32(1), attempts.Load())
	assert.Contains(t, err.Error(), "status 404")
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"500", statusError("u", 500), true},
		{"503", statusError("u", 503), true},
		{"429", statusError("u", 429), true},
		{"404", statusError("u", 404), false},
		{"403", statusError("u", 403), false},
		{"network", newFetchError(ErrNetwork, "u", errors.New("connection reset")), true},
		{"cancelled", newFetchError(ErrNetwork, "u", context.Canceled), false},
		{"decode", newFetchError(ErrDecode, "u", errors.New("bad")), false},
		{"disallowed", newFetchError(ErrDisallowed, "u", nil), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableFetchError(tt.err))
		})
	}
}

func TestBackoff(t *testing.T) {
	c := NewClient(model.HTTPConfig{Backoff: 100 * time.Millisecond}, model.AcquireConfig{}, nil)
	for attempt := 1; attempt <= 3; attempt++ {
		want := float64(100*time.Millisecond) * float64(int(1)<<(attempt-1))
		got := float64(c.backoff(attempt))
		assert.InDelta(t, want, got, want*0.25+1)
	}

	c = NewClient(model.HTTPConfig{}, model.AcquireConfig{}, nil)
	assert.Zero(t, c.backoff(1))
}

func TestFetch_CacheIdempotence(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, `<html><body><p>155mm shells delivered</p></body></html>`)
	}))
	defer server.Close()

	store := cache.NewDiskStore(t.TempDir())
	c := newTestClient(t, server, store, model.AcquireConfig{})

	first, err := c.Fetch(context.Background(), server.URL+"/a")
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), server.URL+"/a")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, model.KindHTML, second.Kind)
	assert.Equal(t, "155mm shells delivered", first.Text)

	// A fresh client over the same directory is served from disk
	c2 := newTestClient(t, server, cache.NewDiskStore(store.Dir()), model.AcquireConfig{})
	third, err := c2.Fetch(context.Background(), server.URL+"/a")
	require.NoError(t, err)
	assert.Equal(t, first.Text, third.Text)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_ConcurrentMissesShareOneRequest(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = fmt.Fprint(w, "<p>shared</p>")
	}))
	defer server.Close()

	c := newTestClient(t, server, cache.NewMemoryStore(), model.AcquireConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := c.Fetch(context.Background(), server.URL)
			assert.NoError(t, err)
			assert.Equal(t, "shared", doc.Text)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_CancelledCallerDoesNotFailSharedRequest(t *testing.T) {
	var calls atomic.Int32
	hit := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		hit <- struct{}{}
		<-release
		_, _ = fmt.Fprint(w, "<p>shared</p>")
	}))
	defer server.Close()

	c := newTestClient(t, server, cache.NewMemoryStore(), model.AcquireConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Fetch(ctx, server.URL)
		firstErr <- err
	}()
	<-hit

	second := make(chan model.CachedDocument, 1)
	go func() {
		doc, err := c.Fetch(context.Background(), server.URL)
		assert.NoError(t, err)
		second <- doc
	}()

	cancel()
	err := <-firstErr
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ErrNetwork, fe.Kind)

	close(release)
	assert.Equal(t, "shared", (<-second).Text)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchTimeout(t *testing.T) {
	c := NewClient(testHTTPConfig(), model.AcquireConfig{}, nil)
	// 3 attempts of 5s plus backoffs of 1ms and 2ms with jitter headroom
	assert.Equal(t, 15*time.Second+3750*time.Microsecond, c.fetchTimeout())

	c = NewClient(model.HTTPConfig{}, model.AcquireConfig{}, nil)
	assert.Zero(t, c.fetchTimeout())
}

func TestFetch_FailureIsNotCached(t *testing.T) {
	noSleep(t)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(t, server, cache.NewMemoryStore(), model.AcquireConfig{})
	_, err := c.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	_, err = c.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, int32(6), calls.Load())
}

func TestFetch_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "<html><script>var x = 1;</script></html>")
	}))
	defer server.Close()

	c := newTestClient(t, server, nil, model.AcquireConfig{})
	_, err := c.Fetch(context.Background(), server.URL)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ErrEmpty, fe.Kind)
}

func TestFetch_SkipPDF(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = fmt.Fprint(w, "%PDF-1.4 not really")
	}))
	defer server.Close()

	c := newTestClient(t, server, nil, model.AcquireConfig{SkipPDF: true})
	_, err := c.Fetch(context.Background(), server.URL+"/report.pdf")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ErrUnsupported, fe.Kind)
}

func TestFetch_BrokenPDFIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "%PDF-1.4 garbage without xref")
	}))
	defer server.Close()

	c := newTestClient(t, server, nil, model.AcquireConfig{SkipPDF: false})
	_, err := c.Fetch(context.Background(), server.URL)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ErrDecode, fe.Kind)
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	var pageCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
			return
		}
		pageCalls.Add(1)
		_, _ = fmt.Fprint(w, "<p>ok</p>")
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.RespectRobots = true
	c := NewClient(cfg, model.AcquireConfig{}, nil, WithHTTPClient(server.Client()))

	_, err := c.Fetch(context.Background(), server.URL+"/private/page")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ErrDisallowed, fe.Kind)
	assert.Equal(t, int32(0), pageCalls.Load())

	doc, err := c.Fetch(context.Background(), server.URL+"/public")
	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Text)
}

func TestProductToken(t *testing.T) {
	assert.Equal(t, "AidScraper", productToken("Mozilla/5.0 (compatible; AidScraper/1.0)"))
	assert.Equal(t, "test-agent", productToken("test-agent"))
	assert.Equal(t, "curl", productToken("curl/8.0"))
}
