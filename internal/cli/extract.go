package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/aidtrace/internal/acquire"
	"github.com/ppiankov/aidtrace/internal/cache"
	"github.com/ppiankov/aidtrace/internal/extract"
	"github.com/ppiankov/aidtrace/internal/fx"
	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/money"
	"github.com/ppiankov/aidtrace/internal/valuation"
)

var extractCountry string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file|url>",
	Short: "Classify one document and print the evidence",
	Long: `Extract runs the evidence classifier and valuation model on a single
document (a URL, an HTML/PDF file, or plain text) and prints the result
as JSON. Useful for checking rules against a known page.

Example:
  aidtrace extract https://example.org/press-release --country Germany
  aidtrace extract notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&extractCountry, "country", "", "donor country (selects the date language)")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the document cache")
}

// extractResult is the JSON printed by the extract command
type extractResult struct {
	Evidence   model.Evidence        `json:"evidence"`
	Valuation  model.ValuationResult `json:"valuation"`
	UsefulLife int                   `json:"useful_life_years"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if cmd.Flags().Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}

	ctx := context.Background()
	target := args[0]

	var doc model.CachedDocument
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		cfg.Acquire.SkipPDF = false
		client := acquire.NewClient(cfg.HTTP, cfg.Acquire, cache.New(cfg.Cache), acquire.WithLogger(logger))
		if target, err = client.ResolveRedirect(ctx, target); err != nil {
			return fmt.Errorf("resolve %s: %w", args[0], err)
		}
		if doc, err = client.Fetch(ctx, target); err != nil {
			return fmt.Errorf("fetch %s: %w", target, err)
		}
	} else if doc, err = readDocument(target); err != nil {
		return err
	}

	rates := fx.NewService(cfg.FX, &http.Client{Timeout: cfg.FX.Timeout}, logger)
	ev := extract.NewClassifier(money.NewNormalizer(rates)).Classify(ctx, target, doc.Kind, doc.Text, extractCountry)

	res := extractResult{
		Evidence:   ev,
		Valuation:  valuation.NewEstimator().Estimate(doc.Text),
		UsefulLife: valuation.UsefulLife(strings.Join(ev.Items, "; ")),
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// readDocument decodes a local PDF, HTML or plain-text file
func readDocument(path string) (model.CachedDocument, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return model.CachedDocument{}, fmt.Errorf("read %s: %w", path, err)
	}

	switch {
	case acquire.IsPDF("", path, body):
		text, err := acquire.PDFText(body)
		if err != nil {
			return model.CachedDocument{}, fmt.Errorf("decode %s: %w", path, err)
		}
		return model.CachedDocument{Kind: model.KindPDF, Text: text}, nil
	case isHTMLFile(path):
		text, err := acquire.HTMLText(body, "text/html")
		if err != nil {
			return model.CachedDocument{}, fmt.Errorf("decode %s: %w", path, err)
		}
		return model.CachedDocument{Kind: model.KindHTML, Text: text}, nil
	default:
		return model.CachedDocument{Kind: model.KindHTML, Text: string(body)}, nil
	}
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}
