package valuation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ppiankov/aidtrace/internal/extract"
	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/rules"
)

var labelRx = regexp.MustCompile(`^\s*(\d[\d,.]*)\s+(.+?)\s*$`)

// Estimator prices quantity labels against a unit-cost catalog
type Estimator struct {
	costs rules.Table[float64]
}

// NewEstimator returns an estimator over the default catalog
func NewEstimator() *Estimator {
	return &Estimator{costs: rules.UnitCosts}
}

// Estimate sums qty × unit cost for every priced quantity label in text.
// Labels without a catalog match are skipped.
func (e *Estimator) Estimate(text string) model.ValuationResult {
	return e.EstimateItems(extract.QuantityItems(text))
}

// EstimateItems prices already extracted "<qty> <label>" strings
func (e *Estimator) EstimateItems(labels []string) model.ValuationResult {
	var res model.ValuationResult
	for _, l := range labels {
		qty, label, ok := ParseLabel(l)
		if !ok {
			continue
		}
		unit, ok := e.costs.First(label)
		if !ok {
			continue
		}
		value := float64(qty) * unit
		res.Total += value
		res.Breakdown = append(res.Breakdown, fmt.Sprintf("%d×%s @≈€%s ≈ €%s",
			qty, label, humanize.Comma(int64(unit)), humanize.Comma(int64(math.Round(value)))))
	}
	return res
}

// ParseLabel splits "10000 155mm rounds" into 10000 and "155mm rounds"
func ParseLabel(s string) (int, string, bool) {
	m := labelRx.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	qty, err := strconv.Atoi(strings.NewReplacer(",", "", ".", "").Replace(m[1]))
	if err != nil || qty < 1 {
		return 0, "", false
	}
	return qty, m[2], true
}
