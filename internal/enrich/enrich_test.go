package enrich

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

	"github.com/ppiankov/aidtrace/internal/acquire"
	"github.com/ppiankov/aidtrace/internal/cache"
	"github.com/ppiankov/aidtrace/internal/extract"
	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/money"
)

const shellText = "155mm shells delivered to Ukraine in March 2023, 10,000 rounds, from stockpiles"

type fakeFetcher struct {
	mu    sync.Mutex
	docs  map[string]string
	calls []string
}

func (f *fakeFetcher) ResolveRedirect(_ context.Context, u string) (string, error) {
	return u, nil
}

func (f *fakeFetcher) Fetch(_ context.Context, u string) (model.CachedDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, u)
	text, ok := f.docs[u]
	if !ok {
		return model.CachedDocument{}, errors.New("not found")
	}
	return model.CachedDocument{Kind: model.KindHTML, Text: text}, nil
}

func (f *fakeFetcher) fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type unitRates struct{}

func (unitRates) RateToReference(context.Context, string) float64 { return 1 }

func testConfig() model.EnrichConfig {
	return model.EnrichConfig{MaxRecords: 10, Workers: 4, MaxURLsPerRecord: 3}
}

func newTestEnricher(f Fetcher, cfg model.EnrichConfig) *Enricher {
	clock := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return New(f, extract.NewClassifier(money.NewNormalizer(unitRates{})), cfg, 7*time.Second, WithClock(clock))
}

func TestRank(t *testing.T) {
	records := []model.Record{{Amount: 0}, {Amount: 500}, {Amount: -1}, {Amount: 500}, {Amount: 100}}
	assert.Equal(t, []int{1, 3, 4, 0, 2}, Rank(records))
}

func TestCapacity(t *testing.T) {
	cfg := model.DefaultConfig().Enrich
	assert.Equal(t, 32, Capacity(cfg, 7*time.Second))
	assert.Equal(t, 8, Schedule(cfg, 7*time.Second, 100))

	cfg.Budget = 5 * time.Second
	assert.Equal(t, 1, Capacity(cfg, 7*time.Second))

	cfg.Budget = 0
	assert.Equal(t, -1, Capacity(cfg, 7*time.Second))
	cfg.MaxRecords = 0
	assert.Equal(t, 100, Schedule(cfg, 7*time.Second, 100))
}

func TestEnrich_ShellDelivery(t *testing.T) {
	f := &fakeFetcher{docs: map[string]string{"https://a.example/x": shellText}}
	records := []model.Record{{Donor: "United States", Month: "2023-02", URLs: []string{"https://a.example/x"}}}

	out, stats := newTestEnricher(f, testConfig()).Enrich(context.Background(), records, nil)

	require.Len(t, out, 1)
	r := out[0]
	assert.Equal(t, model.StatusDelivered, r.Status)
	assert.Equal(t, "2023-03", r.EvidenceMonth)
	assert.Equal(t, model.SourceStockpile, r.SourceCategory)
	assert.Equal(t, "https://a.example/x", r.SourceURL)
	assert.Equal(t, "10000 155mm rounds", r.Description)
	assert.InDelta(t, 35_000_000, r.Amount, 0.5)
	assert.Equal(t, model.AmountEstimate, r.AmountOrigin)
	assert.Len(t, r.Breakdown, 1)
	require.NotNil(t, r.UsefulLifeYears)
	assert.Equal(t, 0, *r.UsefulLifeYears)
	assert.Equal(t, 2022, r.ProductionYear)
	assert.Zero(t, r.FinalValue)

	assert.Equal(t, 1, stats.Scheduled)
	assert.Equal(t, 1, stats.Enriched)
	assert.NotEmpty(t, stats.RunID)

	// input untouched
	assert.Empty(t, records[0].Status)
}

func TestMerge_NonDestructive(t *testing.T) {
	e := newTestEnricher(&fakeFetcher{}, testConfig())
	rec := model.Record{
		Donor:          "Germany",
		Amount:         1_000_000,
		Description:    "Leopard tanks",
		Status:         model.StatusCommitment,
		EvidenceMonth:  "2022-05",
		SourceCategory: model.SourceNewProduction,
		SourceURL:      "https://first.example",
	}
	ev := model.Evidence{
		URL:    "https://second.example",
		Status: model.StatusDelivered,
		Month:  "2023-01",
		Source: model.SourceStockpile,
		Items:  []string{"Leopard tanks", "3 Patriot"},
		Money:  &model.MonetaryMention{Value: 5_000_000, Span: "€5 million"},
	}

	got := e.Merge(rec, ev, 2024)

	assert.Equal(t, model.StatusCommitment, got.Status)
	assert.Equal(t, "2022-05", got.EvidenceMonth)
	assert.Equal(t, model.SourceNewProduction, got.SourceCategory)
	assert.Equal(t, "https://first.example", got.SourceURL)
	assert.Equal(t, "Leopard tanks; 3 Patriot", got.Description)
	assert.Equal(t, 1_000_000.0, got.Amount)
	assert.Equal(t, model.AmountReported, got.AmountOrigin)
	assert.Empty(t, got.MoneyEvidence)
	assert.Equal(t, 1_000_000.0, got.FinalValue)
}

func TestMerge_AmountFromEvidence(t *testing.T) {
	e := newTestEnricher(&fakeFetcher{}, testConfig())
	ev := model.Evidence{
		Source: model.SourceUnknown,
		Money:  &model.MonetaryMention{Value: 2_500_000_000, Span: "€2.5 billion"},
	}

	got := e.Merge(model.Record{Donor: "France"}, ev, 2024)

	assert.Equal(t, 2_500_000_000.0, got.Amount)
	assert.Equal(t, model.AmountEvidence, got.AmountOrigin)
	assert.Equal(t, "€2.5 billion", got.MoneyEvidence)
	assert.Equal(t, got.Amount, got.FinalValue)
	assert.Zero(t, got.ProductionYear)
}

func TestMerge_DescriptionCap(t *testing.T) {
	e := newTestEnricher(&fakeFetcher{}, testConfig())
	long := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		long = append(long, fmt.Sprintf("%d Gepard", i+1))
	}

	got := e.Merge(model.Record{}, model.Evidence{Items: long}, 2024)

	assert.Equal(t, MaxDescription, len([]rune(got.Description)))
}

func TestEnrich_TriesURLsInOrder(t *testing.T) {
	f := &fakeFetcher{docs: map[string]string{
		"https://good.example": shellText,
		"https://late.example": "Leopard tanks",
	}}
	records := []model.Record{{Donor: "Poland"}}
	candidates := [][]string{{
		"https://fail.example",
		"not a url",
		"https://good.example",
		"https://good.example",
		"https://late.example",
	}}

	out, stats := newTestEnricher(f, testConfig()).Enrich(context.Background(), records, candidates)

	assert.Equal(t, []string{"https://fail.example", "https://good.example"}, f.fetched())
	assert.Equal(t, "https://good.example", out[0].SourceURL)
	assert.Equal(t, 1, stats.FailedURLs)
}

func TestEnrich_MaxURLsPerRecord(t *testing.T) {
	f := &fakeFetcher{docs: map[string]string{"https://d.example": shellText}}
	cfg := testConfig()
	cfg.MaxURLsPerRecord = 2
	candidates := [][]string{{"https://a.example", "https://b.example", "https://c.example", "https://d.example"}}

	out, stats := newTestEnricher(f, cfg).Enrich(context.Background(), []model.Record{{Donor: "Norway"}}, candidates)

	assert.Len(t, f.fetched(), 2)
	assert.Empty(t, out[0].Status)
	assert.Zero(t, stats.Enriched)
	assert.Equal(t, 2, stats.FailedURLs)
}

func TestEnrich_SchedulesHighestAmounts(t *testing.T) {
	f := &fakeFetcher{docs: map[string]string{}}
	records := make([]model.Record, 5)
	for i := range records {
		records[i] = model.Record{
			Donor:  "Denmark",
			Amount: float64(i * 100),
			URLs:   []string{fmt.Sprintf("https://r%d.example", i)},
		}
	}
	cfg := testConfig()
	cfg.MaxRecords = 2

	out, stats := newTestEnricher(f, cfg).Enrich(context.Background(), records, nil)

	assert.ElementsMatch(t, []string{"https://r4.example", "https://r3.example"}, f.fetched())
	assert.Equal(t, 2, stats.Scheduled)
	assert.Empty(t, out[0].AmountOrigin)
	for _, r := range out[1:] {
		assert.Equal(t, model.AmountReported, r.AmountOrigin)
	}
}

func TestEnrich_ThroughCachedClient(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, "<html><head><script>var x=1;</script></head><body><p>%s</p></body></html>", shellText)
	}))
	defer server.Close()

	store := cache.NewDiskStore(t.TempDir())
	httpCfg := model.DefaultConfig().HTTP
	httpCfg.RequestsPerSecond = 0
	client := acquire.NewClient(httpCfg, model.AcquireConfig{SkipPDF: true}, store, acquire.WithHTTPClient(server.Client()))

	e := newTestEnricher(client, testConfig())
	records := []model.Record{{Donor: "United States", URLs: []string{server.URL + "/doc"}}}

	first, _ := e.Enrich(context.Background(), records, nil)
	second, _ := e.Enrich(context.Background(), records, nil)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, first[0].Description, second[0].Description)
	assert.Equal(t, "10000 155mm rounds", first[0].Description)
	assert.Equal(t, model.StatusDelivered, first[0].Status)
	assert.Zero(t, first[0].FinalValue)
}
