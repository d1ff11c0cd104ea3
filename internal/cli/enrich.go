package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ppiankov/aidtrace/internal/acquire"
	"github.com/ppiankov/aidtrace/internal/cache"
	"github.com/ppiankov/aidtrace/internal/enrich"
	"github.com/ppiankov/aidtrace/internal/extract"
	"github.com/ppiankov/aidtrace/internal/fx"
	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/money"
	"github.com/ppiankov/aidtrace/internal/records"
	"github.com/ppiankov/aidtrace/internal/search"
	"github.com/ppiankov/aidtrace/internal/translate"
)

var (
	outFile     string
	workers     int
	maxRecords  int
	budget      time.Duration
	reqTimeout  time.Duration
	skipPDF     bool
	noCache     bool
	cacheDir    string
	searchSites []string
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich <records.json|records.yaml>",
	Short: "Enrich records with evidence from candidate documents",
	Long: `Enrich loads records, builds candidate URLs (record URLs, else search
queries in English and the donor's language), fetches the highest-value
records' documents under the request budget and merges the evidence.

Example:
  aidtrace enrich records.json --out enriched.json
  aidtrace enrich records.yaml --workers 4 --budget 60s --no-cache
  AID_THREADS=2 AID_SKIP_PDF=0 aidtrace enrich records.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().StringVarP(&outFile, "out", "o", "", "output path (.json or .yaml); stdout when empty")
	enrichCmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (overrides enrich.workers)")
	enrichCmd.Flags().IntVar(&maxRecords, "max-records", 0, "records to enrich (overrides enrich.max_records)")
	enrichCmd.Flags().DurationVar(&budget, "budget", 0, "soft time budget (overrides enrich.budget)")
	enrichCmd.Flags().DurationVar(&reqTimeout, "timeout", 0, "per-request timeout (overrides http.timeout)")
	enrichCmd.Flags().BoolVar(&skipPDF, "skip-pdf", true, "skip PDF documents")
	enrichCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the document cache")
	enrichCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (overrides cache.dir)")
	enrichCmd.Flags().StringSliceVar(&searchSites, "site", nil, "restrict generated searches to these sites (repeatable)")
}

// applyEnrichFlags lets explicitly set flags win over config and env
func applyEnrichFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Enrich.Workers = workers
	}
	if flags.Changed("max-records") {
		cfg.Enrich.MaxRecords = maxRecords
	}
	if flags.Changed("budget") {
		cfg.Enrich.Budget = budget
	}
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = reqTimeout
	}
	if flags.Changed("skip-pdf") {
		cfg.Acquire.SkipPDF = skipPDF
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	applyEnrichFlags(cmd, cfg)

	// 1. Load and normalize records
	recs, err := records.Load(args[0])
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	recs = records.Normalize(recs)

	// 2. Wire the run's shared services
	ctx := context.Background()
	store := cache.New(cfg.Cache)
	rates := fx.NewService(cfg.FX, &http.Client{Timeout: cfg.FX.Timeout}, logger)
	classifier := extract.NewClassifier(money.NewNormalizer(rates))
	client := acquire.NewClient(cfg.HTTP, cfg.Acquire, store, acquire.WithLogger(logger))
	provider := search.NewProvider(translate.New(cfg.Translate, logger), searchSites...)

	// 3. Enrich
	candidates := provider.All(ctx, recs)
	enricher := enrich.New(client, classifier, cfg.Enrich, cfg.HTTP.Timeout, enrich.WithLogger(logger))
	out, stats := enricher.Enrich(ctx, recs, candidates)

	// 4. Write results
	if outFile != "" {
		if err := records.Save(outFile, out); err != nil {
			return fmt.Errorf("save records: %w", err)
		}
	} else {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode records: %w", err)
		}
	}

	printSummary(stats, out)
	return nil
}

func printSummary(stats enrich.Stats, out []model.Record) {
	var total, final float64
	for _, r := range out {
		total += r.Amount
		final += r.FinalValue
	}
	fmt.Fprintf(os.Stderr, "\nrun %s\n", stats.RunID)
	fmt.Fprintf(os.Stderr, "  records:    %d (scheduled %d, enriched %d)\n", stats.Records, stats.Scheduled, stats.Enriched)
	fmt.Fprintf(os.Stderr, "  failed urls: %d\n", stats.FailedURLs)
	fmt.Fprintf(os.Stderr, "  amount:     €%s (final €%s)\n", humanize.Comma(int64(total)), humanize.Comma(int64(final)))
	fmt.Fprintf(os.Stderr, "  elapsed:    %s\n", stats.Elapsed.Round(time.Millisecond))
}
