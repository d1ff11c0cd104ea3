package search

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/aidtrace/internal/acquire"
	"github.com/ppiankov/aidtrace/internal/model"
)

type upperTranslator struct{ langs []string }

func (u *upperTranslator) Translate(_ context.Context, text, lang string) string {
	u.langs = append(u.langs, lang)
	if lang == "en" {
		return text
	}
	return strings.ToUpper(text)
}

func TestQuery(t *testing.T) {
	rec := model.Record{Donor: "Germany", Description: "  IRIS-T   air defence ", Month: "2023-01", Amount: 150_000_000}
	assert.Equal(t, "Germany Ukraine IRIS-T air defence 2023-01 150000000", Query(rec))

	assert.Equal(t, "Spain Ukraine", Query(model.Record{Donor: "Spain"}))
}

func TestCandidates_RecordURLsFirst(t *testing.T) {
	p := NewProvider(nil, "gov.example")
	rec := model.Record{Donor: "Germany", URLs: []string{"https://a.example/doc"}}
	assert.Equal(t, []string{"https://a.example/doc"}, p.Candidates(context.Background(), rec))
}

func TestCandidates_SearchURLs(t *testing.T) {
	tr := &upperTranslator{}
	p := NewProvider(tr, "bmvg.de")
	rec := model.Record{Donor: "Germany", Description: "Leopard tanks"}

	urls := p.Candidates(context.Background(), rec)

	require.Len(t, urls, 4)
	assert.Equal(t, []string{"de"}, tr.langs)
	assert.Equal(t, SearchURL("Germany Ukraine Leopard tanks site:bmvg.de"), urls[0])
	assert.Equal(t, SearchURL("GERMANY UKRAINE LEOPARD TANKS site:bmvg.de"), urls[1])
	assert.Equal(t, SearchURL("Germany Ukraine Leopard tanks Ukraine"), urls[2])
	for _, u := range urls {
		assert.True(t, acquire.IsSearchURL(u), u)
	}
}

func TestCandidates_EnglishDonorSkipsTranslation(t *testing.T) {
	p := NewProvider(&upperTranslator{})
	urls := p.Candidates(context.Background(), model.Record{Donor: "United Kingdom"})
	assert.Equal(t, []string{SearchURL("United Kingdom Ukraine Ukraine")}, urls)
}

func TestCandidates_Cap(t *testing.T) {
	sites := make([]string, 30)
	for i := range sites {
		sites[i] = "s.example"
	}
	urls := NewProvider(nil, sites...).Candidates(context.Background(), model.Record{Donor: "Italy"})
	assert.Len(t, urls, MaxCandidates)
}

func TestAll(t *testing.T) {
	recs := []model.Record{{Donor: "Italy", URLs: []string{"https://x.example"}}, {Donor: "Spain"}}
	all := NewProvider(nil).All(context.Background(), recs)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"https://x.example"}, all[0])
	assert.Len(t, all[1], 1)
}
