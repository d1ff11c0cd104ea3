package model

import "time"

// MaxEvidenceText bounds the raw text kept on Evidence (in runes)
const MaxEvidenceText = 20000

// DocumentKind is the kind of content held by a cached document
type DocumentKind string

const (
	KindHTML     DocumentKind = "html"
	KindPDF      DocumentKind = "pdf"
	KindRedirect DocumentKind = "redirect" // search URL -> target URL mapping
)

// CachedDocument is a fetched URL's decoded content
type CachedDocument struct {
	Kind      DocumentKind `json:"kind"`
	Text      string       `json:"text,omitempty"`
	URL       string       `json:"url,omitempty"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// MonetaryMention is one parsed amount candidate
type MonetaryMention struct {
	Magnitude  float64 `json:"magnitude"`  // number as written
	Currency   string  `json:"currency"`   // ISO 4217 code
	Multiplier float64 `json:"multiplier"` // e.g. 1e9 for "billion"
	Value      float64 `json:"value_eur"`  // converted to reference currency
	Span       string  `json:"span"`       // exact matched text
	Prefix     bool    `json:"prefix"`     // currency written before the number
}

// Evidence is the structured result of classifying one document
type Evidence struct {
	URL     string           `json:"url"`
	Kind    DocumentKind     `json:"kind,omitempty"`
	Status  Status           `json:"status,omitempty"`
	Month   string           `json:"month,omitempty"`
	Items   []string         `json:"items,omitempty"`
	Source  SourceCategory   `json:"source_category,omitempty"`
	Money   *MonetaryMention `json:"money,omitempty"`
	RawText string           `json:"-"`
}

// HasSignal reports whether the evidence carries anything worth merging
func (e Evidence) HasSignal() bool {
	return e.Status != "" || e.Month != "" || len(e.Items) > 0 || (e.Money != nil && e.Money.Value > 0)
}

// ValuationResult is an estimate built from item quantities
type ValuationResult struct {
	Total     float64  `json:"total_eur"`
	Breakdown []string `json:"breakdown,omitempty"`
}
