package acquire

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"
)

// RobotsChecker answers robots.txt questions, fetching each host's file
// once per run.
type RobotsChecker struct {
	files      *gocache.Cache // scheme://host -> *robotstxt.RobotsData
	group      singleflight.Group
	httpClient *http.Client
	agent      string
}

// NewRobotsChecker creates a checker sharing the fetch client. Groups are
// matched on the product token of userAgent.
func NewRobotsChecker(client *http.Client, userAgent string) *RobotsChecker {
	return &RobotsChecker{
		files:      gocache.New(gocache.NoExpiration, 0),
		httpClient: client,
		agent:      productToken(userAgent),
	}
}

// CanFetch reports whether rawURL may be fetched, plus the host's crawl
// delay. A robots.txt that cannot be fetched allows everything.
func (r *RobotsChecker) CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, eris.Wrap(err, "parse URL")
	}

	data, err := r.robots(ctx, parsed.Scheme+"://"+parsed.Host)
	if err != nil {
		return true, 0, nil
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	var delay time.Duration
	if group := data.FindGroup(r.agent); group != nil {
		delay = group.CrawlDelay
	}
	return data.TestAgent(path, r.agent), delay, nil
}

func (r *RobotsChecker) robots(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	if v, ok := r.files.Get(origin); ok {
		return v.(*robotstxt.RobotsData), nil
	}

	v, err, _ := r.group.Do(origin, func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
		if err != nil {
			return nil, eris.Wrap(err, "create request")
		}
		req.Header.Set("User-Agent", r.agent)

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "fetch robots.txt")
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := robotstxt.FromResponse(resp)
		if err != nil {
			return nil, eris.Wrap(err, "parse robots.txt")
		}
		r.files.Set(origin, data, gocache.NoExpiration)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*robotstxt.RobotsData), nil
}

// productToken extracts the product name used for robots.txt matching,
// e.g. "AidScraper" from "Mozilla/5.0 (compatible; AidScraper/1.0)".
func productToken(ua string) string {
	if _, rest, ok := strings.Cut(ua, "compatible;"); ok {
		if fields := strings.Fields(strings.TrimRight(rest, ")")); len(fields) > 0 {
			return strings.Split(fields[0], "/")[0]
		}
	}
	if fields := strings.Fields(ua); len(fields) > 0 {
		return strings.Split(fields[0], "/")[0]
	}
	return ua
}
