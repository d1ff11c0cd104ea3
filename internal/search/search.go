// Package search builds candidate URLs for a record.
package search

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/rules"
	"github.com/ppiankov/aidtrace/internal/translate"
)

// MaxCandidates caps the URLs proposed for one record
const MaxCandidates = 20

// descriptionLimit bounds how much of the description goes into a query
const descriptionLimit = 100

const googleSearch = "https://www.google.com/search?q="

var spaceRx = regexp.MustCompile(`\s+`)

// Provider proposes candidate documents for records
type Provider struct {
	translator translate.Translator
	sites      []string
}

// NewProvider creates a provider. Queries are also issued per site in
// sites (as site: filters) when given.
func NewProvider(translator translate.Translator, sites ...string) *Provider {
	if translator == nil {
		translator = translate.Passthrough{}
	}
	return &Provider{translator: translator, sites: sites}
}

// Candidates returns the record's own URLs when it has any, otherwise
// search URLs for an English query and its translation into the donor's
// language.
func (p *Provider) Candidates(ctx context.Context, rec model.Record) []string {
	if len(rec.URLs) > 0 {
		return rec.URLs
	}

	en := Query(rec)
	queries := []string{en}
	if local := p.translator.Translate(ctx, en, rules.LanguageFor(rec.Donor)); local != en && strings.TrimSpace(local) != "" {
		queries = append(queries, local)
	}

	var urls []string
	for _, q := range queries {
		for _, site := range p.sites {
			urls = append(urls, SearchURL(q+" site:"+site))
		}
	}
	for _, q := range queries {
		urls = append(urls, SearchURL(q+" Ukraine"))
	}
	if len(urls) > MaxCandidates {
		urls = urls[:MaxCandidates]
	}
	return urls
}

// All returns candidates for every record, index aligned
func (p *Provider) All(ctx context.Context, recs []model.Record) [][]string {
	out := make([][]string, len(recs))
	for i, rec := range recs {
		out[i] = p.Candidates(ctx, rec)
	}
	return out
}

// Query is "<donor> Ukraine <description> <month> <amount>"
func Query(rec model.Record) string {
	desc := []rune(strings.TrimSpace(rec.Description))
	if len(desc) > descriptionLimit {
		desc = desc[:descriptionLimit]
	}
	parts := []string{rec.Donor, "Ukraine", string(desc), rec.Month}
	if rec.HasAmount() {
		parts = append(parts, fmt.Sprintf("%.0f", rec.Amount))
	}
	return strings.TrimSpace(spaceRx.ReplaceAllString(strings.Join(parts, " "), " "))
}

// SearchURL is the search-engine results URL for q
func SearchURL(q string) string {
	return googleSearch + url.QueryEscape(q)
}
