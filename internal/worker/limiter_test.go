package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}
	if limiter.defaultRate != 10 {
		t.Errorf("expected rate 10, got %v", limiter.defaultRate)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different host should also work
	if err := limiter.Wait(ctx, "http://defense.gov"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_SetCrawlDelay(t *testing.T) {
	limiter := NewLimiter(100, 4)
	url := "https://www.example.com/page"

	limiter.SetCrawlDelay(url, time.Hour)

	if !limiter.Allow(url) {
		t.Fatalf("first request should pass")
	}
	if limiter.Allow("https://example.com/other") {
		t.Errorf("crawl delay should hold back the second request")
	}
	if !limiter.Allow("https://other.com") {
		t.Errorf("other host should pass")
	}

	// A faster delay never speeds an already slower host up
	limiter.SetCrawlDelay(url, time.Millisecond)
	if limiter.Allow(url) {
		t.Errorf("slower bucket should be kept")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	url := "http://example.com"
	if err := limiter.Wait(context.Background(), url); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, url); err == nil {
		t.Errorf("expected wait to fail once the context expires")
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "http://example.com"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst of 1 is consumed
	if limiter.Allow(url) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// www. prefix shares the same bucket
	if limiter.Allow("https://www.example.com/other") {
		t.Errorf("expected www host to share the exhausted bucket")
	}

	if !limiter.Allow("http://other.com") {
		t.Errorf("expected allow for other host")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("http://example.com") {
			t.Fatalf("request %d rejected by unlimited limiter", i)
		}
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(10, 10)

	limiter.SetHostRate("Slow.com", 0.1, 1)

	if !limiter.Allow("http://slow.com") {
		t.Errorf("first request should pass")
	}
	if limiter.Allow("http://slow.com") {
		t.Errorf("second request should fail")
	}
	if !limiter.Allow("http://fast.com") {
		t.Errorf("other host should pass")
	}
}

func TestHost(t *testing.T) {
	host, err := Host("http://WWW.Example.com:8080/foo")
	if err != nil {
		t.Fatalf("Host failed: %v", err)
	}
	if host != "example.com" {
		t.Errorf("expected example.com, got %s", host)
	}

	if _, err := Host("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
