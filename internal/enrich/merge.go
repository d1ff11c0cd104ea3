package enrich

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/valuation"
)

// MaxDescription caps the merged item text (in runes)
const MaxDescription = 6000

// Merge fills blank record fields from ev. Existing values are never
// overwritten; items are appended when new.
func (e *Enricher) Merge(rec model.Record, ev model.Evidence, runYear int) model.Record {
	rec.Description = appendItems(rec.Description, ev.Items)

	if rec.Status == "" {
		rec.Status = ev.Status
	}
	if rec.EvidenceMonth == "" {
		rec.EvidenceMonth = ev.Month
	}
	if rec.SourceCategory == "" {
		rec.SourceCategory = ev.Source
	}
	if rec.SourceURL == "" {
		rec.SourceURL = ev.URL
	}

	switch {
	case rec.HasAmount():
		if rec.AmountOrigin == "" {
			rec.AmountOrigin = model.AmountReported
		}
	case ev.Money != nil && ev.Money.Value > 0:
		rec.Amount = ev.Money.Value
		rec.AmountOrigin = model.AmountEvidence
		rec.MoneyEvidence = ev.Money.Span
	default:
		if est := e.estimator.Estimate(ev.RawText); est.Total > 0 {
			rec.Amount = est.Total
			rec.AmountOrigin = model.AmountEstimate
			rec.Breakdown = est.Breakdown
		}
	}

	return finalize(rec, runYear)
}

// finalize derives useful life, production year and final value
func finalize(rec model.Record, runYear int) model.Record {
	life := valuation.UsefulLife(rec.Description)
	rec.UsefulLifeYears = &life

	if !rec.HasAmount() {
		return rec
	}

	source := rec.SourceCategory
	if source == "" {
		source = model.SourceUnknown
	}
	evidenceYear := valuation.Year(rec.EvidenceMonth)
	referenceYear := valuation.Year(rec.Month)
	if referenceYear == 0 {
		referenceYear = runYear
	}

	rec.FinalValue = valuation.Depreciate(rec.Amount, life, source, referenceYear, evidenceYear)
	if source == model.SourceStockpile {
		year := evidenceYear
		if year == 0 {
			year = referenceYear
		}
		rec.ProductionYear = valuation.ProductionYear(life, year)
	}
	return rec
}

func appendItems(desc string, items []string) string {
	desc = strings.TrimSpace(desc)
	for _, item := range items {
		if item == "" || strings.Contains(desc, item) {
			continue
		}
		if desc != "" {
			desc += "; "
		}
		desc += item
	}
	if utf8.RuneCountInString(desc) > MaxDescription {
		desc = string([]rune(desc)[:MaxDescription])
	}
	return desc
}
