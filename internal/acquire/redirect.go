package acquire

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ppiankov/aidtrace/internal/cache"
	"github.com/ppiankov/aidtrace/internal/model"
)

// IsSearchURL reports whether rawURL is a search-engine result page
func IsSearchURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(parsed.Hostname()), "google.") &&
		strings.HasPrefix(parsed.Path, "/search")
}

// ResolveRedirect maps a search URL to its first outbound result. Other
// URLs are returned unchanged. Mappings are cached.
func (c *Client) ResolveRedirect(ctx context.Context, searchURL string) (string, error) {
	if !c.isSearch(searchURL) {
		return searchURL, nil
	}

	key := cache.RedirectKey(searchURL)
	if doc, ok := c.store.Get(key); ok && doc.URL != "" {
		return doc.URL, nil
	}

	body, _, err := c.FetchWithRetry(ctx, searchURL)
	if err != nil {
		return "", err
	}

	target := FirstOutboundLink(body, searchURL)
	if target == "" {
		return "", newFetchError(ErrEmpty, searchURL, nil)
	}

	doc := model.CachedDocument{Kind: model.KindRedirect, URL: target, FetchedAt: c.now().UTC()}
	if err := c.store.Put(key, doc); err != nil {
		c.logger.Warn("cache write failed", zap.String("url", searchURL), zap.Error(err))
	}
	return target, nil
}

// FirstOutboundLink returns the first result link of a search page: a
// "/url?q=<target>" wrapper, or an absolute link leaving the search host.
func FirstOutboundLink(body []byte, pageURL string) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			if target := outboundTarget(base, strings.TrimSpace(attr(n, "href"))); target != "" {
				found = target
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return found
}

func outboundTarget(base *url.URL, href string) string {
	if href == "" {
		return ""
	}

	if strings.HasPrefix(href, "/url?") {
		parsed, err := url.Parse(href)
		if err != nil {
			return ""
		}
		q := parsed.Query().Get("q")
		if q == "" {
			q = parsed.Query().Get("url")
		}
		return externalURL(base, q)
	}

	resolved := resolveURL(base, href)
	if resolved == "" {
		return ""
	}
	return externalURL(base, resolved)
}

// externalURL keeps absolute http(s) URLs that leave the search engine
func externalURL(base *url.URL, raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	if host == strings.ToLower(base.Hostname()) ||
		strings.Contains(host, "google.") || strings.HasSuffix(host, "googleusercontent.com") {
		return ""
	}
	return parsed.String()
}

// resolveURL resolves a relative URL against a base URL
func resolveURL(base *url.URL, href string) string {
	// Skip anchors
	if strings.HasPrefix(href, "#") {
		return ""
	}

	// Skip javascript: and mailto: links
	if strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)

	// Only keep http/https URLs
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	return resolved.String()
}
