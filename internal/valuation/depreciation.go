package valuation

import (
	"strconv"

	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/rules"
)

// maxAge caps the assumed age of stockpiled materiel (years)
const maxAge = 12

// UsefulLife returns the assumed service life for the described items
func UsefulLife(itemsText string) int {
	if life, ok := rules.UsefulLife.First(itemsText); ok {
		return life
	}
	return rules.DefaultUsefulLife
}

// ProductionYear assumes stock was produced half a service life before
// the transfer year, at least one and at most maxAge years earlier.
func ProductionYear(life, year int) int {
	return year - min(max(1, life/2), maxAge)
}

// Depreciate applies straight-line depreciation to stockpile transfers.
// The evidence year wins over the reference year; without either, or for
// any other source, base is returned unchanged.
func Depreciate(base float64, life int, source model.SourceCategory, referenceYear, evidenceYear int) float64 {
	if base <= 0 {
		return 0
	}
	year := evidenceYear
	if year <= 0 {
		year = referenceYear
	}
	if source != model.SourceStockpile || year <= 0 {
		return base
	}

	annual := base / float64(max(life, 1))
	final := base - annual*float64(year-ProductionYear(life, year))
	return min(max(final, 0), base)
}

// Year reads the year of a "YYYY-MM" month, or 0
func Year(month string) int {
	if len(month) < 4 {
		return 0
	}
	y, err := strconv.Atoi(month[:4])
	if err != nil {
		return 0
	}
	return y
}
