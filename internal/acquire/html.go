package acquire

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// publishedMeta lists meta properties carrying a publication timestamp,
// in priority order.
var publishedMeta = []string{"article:published_time", "og:updated_time"}

// HTMLText reduces an HTML page to normalized visible text. A detected
// publication timestamp is prefixed as "Published <ts>. ".
func HTMLText(body []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		r = bytes.NewReader(body)
	}

	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	text := strings.Join(strings.Fields(extractVisibleText(doc)), " ")
	if pub := publishedTime(doc); pub != "" {
		text = "Published " + pub + ". " + text
	}
	return text, nil
}

func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip script, style, noscript tags
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

func publishedTime(doc *html.Node) string {
	metas := make(map[string]string)
	var timeValue string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				key := attr(n, "property")
				if key == "" {
					key = attr(n, "name")
				}
				if key != "" {
					if _, seen := metas[key]; !seen {
						metas[key] = strings.TrimSpace(attr(n, "content"))
					}
				}
			case "time":
				if timeValue == "" {
					timeValue = strings.TrimSpace(attr(n, "datetime"))
					if timeValue == "" {
						timeValue = strings.TrimSpace(nodeText(n))
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, key := range publishedMeta {
		if v := metas[key]; v != "" {
			return v
		}
	}
	return timeValue
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}
