package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/aidtrace/internal/money"
	"github.com/ppiankov/aidtrace/internal/rules"
)

const quantityPattern = `(` + rules.GroupedNumber + `|\d+)`

var (
	// <qty> [x] [<noun>] <Name… | NNNmm [rounds]>
	quantityItemRx = regexp.MustCompile(`(?:^|[^\p{L}\p{N}.,])` + quantityPattern +
		`(?:\s*[x×]\s*|\s+)(?:((?i)` + rules.ItemNouns + `)\s+)?` +
		`([A-Z][\w\-/]+(?:\s+[A-Z0-9][\w\-/]*){0,3}|\d{2,4}\s?mm(?:\s*(?i:rounds?|shells?|ammo))?)`)

	// <qty> rounds|shells|cartridges, bound to a caliber elsewhere
	ammoCountRx = regexp.MustCompile(`(?:^|[^\p{L}\p{N}.,])` + quantityPattern + `\s+((?i)` + rules.AmmoNouns + `)\b`)

	caliberRx = regexp.MustCompile(rules.Caliber)
)

// KeywordItems maps known system names to canonical labels, in catalog
// order, deduplicated and capped.
func KeywordItems(text string) []string {
	return dedupe(rules.ItemCatalog.All(text), rules.MaxItems)
}

type positioned struct {
	pos   int
	label string
}

// QuantityItems extracts "<qty> <item>" labels such as "40 Bradley IFVs"
// or "10000 155mm rounds", in text order.
func QuantityItems(text string) []string {
	var found []positioned

	for _, m := range quantityItemRx.FindAllStringSubmatchIndex(text, -1) {
		qty := quantity(text[m[2]:m[3]])
		item := strings.Join(strings.Fields(text[m[6]:m[7]]), " ")
		if qty < 1 || rules.LeadingMonth(item) {
			continue
		}
		if looksLikeYear(text[m[2]:m[3]]) && !caliberRx.MatchString(item) {
			continue
		}

		label := fmt.Sprintf("%d %s", qty, item)
		if m[4] >= 0 {
			label = fmt.Sprintf("%d %s %s", qty, item, strings.ToLower(text[m[4]:m[5]]))
		}
		found = append(found, positioned{pos: m[2], label: label})
	}

	calibers := caliberRx.FindAllStringSubmatchIndex(text, -1)
	if len(calibers) > 0 {
		for _, m := range ammoCountRx.FindAllStringSubmatchIndex(text, -1) {
			qty := quantity(text[m[2]:m[3]])
			if qty < 1 {
				continue
			}
			c := nearest(calibers, m[2])
			noun := strings.ToLower(text[m[4]:m[5]])
			label := fmt.Sprintf("%d %smm %s", qty, text[c[2]:c[3]], noun)
			found = append(found, positioned{pos: m[2], label: label})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	labels := make([]string, 0, len(found))
	for _, f := range found {
		if utf8.RuneCountInString(f.label) <= rules.MaxItemLabel {
			labels = append(labels, f.label)
		}
	}
	return dedupe(labels, rules.MaxItems)
}

// Items prefers quantity labels and falls back to keyword labels
func Items(text string) []string {
	if q := QuantityItems(text); len(q) > 0 {
		return q
	}
	return KeywordItems(text)
}

// quantity reads a count; separators only ever group thousands here
func quantity(raw string) int {
	return int(money.ParseNumber(strings.NewReplacer(".", "", ",", "").Replace(raw)))
}

// looksLikeYear matches bare four-digit numbers near the reporting window
func looksLikeYear(raw string) bool {
	if len(raw) != 4 {
		return false
	}
	n := quantity(raw)
	return n >= rules.MinEvidenceYear-10 && n <= rules.MaxEvidenceYear+5
}

func nearest(matches [][]int, pos int) []int {
	best := matches[0]
	bestDist := distance(best, pos)
	for _, m := range matches[1:] {
		if d := distance(m, pos); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

func distance(m []int, pos int) int {
	switch {
	case pos < m[0]:
		return m[0] - pos
	case pos > m[1]:
		return pos - m[1]
	default:
		return 0
	}
}

func dedupe(in []string, limit int) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
