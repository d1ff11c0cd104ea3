// Package enrich schedules records for document lookups under a budget
// and merges the evidence found back into them.
package enrich

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/aidtrace/internal/extract"
	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/valuation"
	"github.com/ppiankov/aidtrace/internal/worker"
)

// Fetcher is the acquisition surface the orchestrator needs
type Fetcher interface {
	ResolveRedirect(ctx context.Context, searchURL string) (string, error)
	Fetch(ctx context.Context, rawURL string) (model.CachedDocument, error)
}

// Stats summarises one run
type Stats struct {
	RunID      string        `json:"run_id"`
	Records    int           `json:"records"`
	Scheduled  int           `json:"scheduled"`
	Enriched   int           `json:"enriched"`
	FailedURLs int           `json:"failed_urls"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Enricher runs the fetch-classify cycle for the highest-value records
type Enricher struct {
	fetcher        Fetcher
	classifier     *extract.Classifier
	estimator      *valuation.Estimator
	cfg            model.EnrichConfig
	requestTimeout time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

// Option configures an Enricher
type Option func(*Enricher)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Enricher) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock replaces the time source used for the run year and elapsed time
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) { e.now = now }
}

// New creates an enricher. requestTimeout is the per-request timeout used
// to size the schedule against the budget.
func New(fetcher Fetcher, classifier *extract.Classifier, cfg model.EnrichConfig, requestTimeout time.Duration, opts ...Option) *Enricher {
	e := &Enricher{
		fetcher:        fetcher,
		classifier:     classifier,
		estimator:      valuation.NewEstimator(),
		cfg:            cfg,
		requestTimeout: requestTimeout,
		logger:         zap.NewNop(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg.MaxURLsPerRecord <= 0 {
		e.cfg.MaxURLsPerRecord = model.DefaultConfig().Enrich.MaxURLsPerRecord
	}
	return e
}

// delta is what one task hands back to the orchestrating goroutine
type delta struct {
	index    int
	evidence *model.Evidence
	failed   int
}

// Enrich returns a copy of records with evidence merged in. candidates[i]
// lists the URLs for records[i]; when absent the record's own URLs are used.
func (e *Enricher) Enrich(ctx context.Context, records []model.Record, candidates [][]string) ([]model.Record, Stats) {
	start := e.now()
	stats := Stats{RunID: uuid.NewString(), Records: len(records)}
	logger := e.logger.With(zap.String("run_id", stats.RunID))

	out := make([]model.Record, len(records))
	copy(out, records)

	// 1. Pick the records worth spending requests on
	order := Rank(out)
	if n := Schedule(e.cfg, e.requestTimeout, len(order)); n < len(order) {
		order = order[:n]
	}
	stats.Scheduled = len(order)
	logger.Info("enrichment scheduled",
		zap.Int("records", len(out)), zap.Int("scheduled", stats.Scheduled), zap.Int("workers", e.cfg.Workers))

	// 2. One task per record; tasks see a copy and return a delta
	pool := worker.NewPool[delta](ctx, e.cfg.Workers)
	pool.Start()
	for _, i := range order {
		rec := out[i]
		urls := rec.URLs
		if i < len(candidates) && len(candidates[i]) > 0 {
			urls = candidates[i]
		}
		idx := i
		pool.Submit(worker.Func[delta](func(ctx context.Context) delta {
			return e.lookup(ctx, logger, idx, rec, urls)
		}))
	}
	deltas := pool.Wait()

	// 3. Merge on this goroutine only
	runYear := e.now().Year()
	for _, d := range deltas {
		stats.FailedURLs += d.failed
		if d.evidence == nil {
			continue
		}
		out[d.index] = e.Merge(out[d.index], *d.evidence, runYear)
		stats.Enriched++
	}

	for i := range out {
		if out[i].HasAmount() && out[i].AmountOrigin == "" {
			out[i].AmountOrigin = model.AmountReported
		}
	}

	stats.Elapsed = e.now().Sub(start)
	logger.Info("enrichment finished",
		zap.Int("enriched", stats.Enriched), zap.Int("failed_urls", stats.FailedURLs), zap.Duration("elapsed", stats.Elapsed))
	return out, stats
}

// lookup tries candidate URLs in order and stops at the first document
// carrying a signal. Every error counts as "no signal".
func (e *Enricher) lookup(ctx context.Context, logger *zap.Logger, index int, rec model.Record, urls []string) delta {
	d := delta{index: index}
	logger = logger.With(zap.String("record", recordLabel(rec, index)))

	seen := make(map[string]bool, len(urls))
	tried := 0
	for _, u := range urls {
		if tried >= e.cfg.MaxURLsPerRecord || ctx.Err() != nil {
			break
		}
		u = strings.TrimSpace(u)
		if !strings.HasPrefix(u, "http") {
			continue
		}

		target, err := e.fetcher.ResolveRedirect(ctx, u)
		if err != nil || target == "" {
			d.failed++
			logger.Debug("redirect unresolved", zap.String("url", u), zap.Error(err))
			continue
		}
		if seen[target] {
			continue
		}
		seen[target] = true
		tried++

		doc, err := e.fetcher.Fetch(ctx, target)
		if err != nil {
			d.failed++
			logger.Debug("fetch failed", zap.String("url", target), zap.Error(err))
			continue
		}

		ev := e.classifier.Classify(ctx, target, doc.Kind, doc.Text, rec.Donor)
		if ev.HasSignal() {
			logger.Debug("evidence found", zap.String("url", target), zap.String("status", string(ev.Status)))
			d.evidence = &ev
			return d
		}
	}
	return d
}

// Rank orders record indices by known amount, highest first. Unknown
// amounts count as zero; ties keep input order.
func Rank(records []model.Record) []int {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	amount := func(i int) float64 { return max(records[i].Amount, 0) }
	sort.SliceStable(order, func(a, b int) bool { return amount(order[a]) > amount(order[b]) })
	return order
}

// Capacity is how many records the soft budget allows:
// workers × floor(budget / (timeout × urls per record)), at least 1.
// It returns -1 when no budget is set.
func Capacity(cfg model.EnrichConfig, requestTimeout time.Duration) int {
	perRecord := requestTimeout * time.Duration(max(cfg.MaxURLsPerRecord, 1))
	if cfg.Budget <= 0 || perRecord <= 0 {
		return -1
	}
	return max(max(cfg.Workers, 1)*int(cfg.Budget/perRecord), 1)
}

// Schedule returns how many of n ranked records get network work
func Schedule(cfg model.EnrichConfig, requestTimeout time.Duration, n int) int {
	if cfg.MaxRecords > 0 {
		n = min(n, cfg.MaxRecords)
	}
	if c := Capacity(cfg, requestTimeout); c >= 0 {
		n = min(n, c)
	}
	return n
}

func recordLabel(rec model.Record, index int) string {
	if rec.ID != "" {
		return rec.ID
	}
	return rec.Donor + "#" + strconv.Itoa(index)
}
