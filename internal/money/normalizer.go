// Package money extracts monetary mentions from free text and converts
// them to the reference currency (EUR).
package money

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/rules"
)

// RateSource converts one unit of a currency to the reference currency
type RateSource interface {
	RateToReference(ctx context.Context, code string) float64
}

const numberPattern = `((?:` + rules.GroupedNumber + `|\d+)(?:[.,]\d+)?)`

// digitBoundary keeps a suffix mention from starting inside a longer
// number, such as the "023" of a preceding year.
const digitBoundary = `(?:^|[^\p{N}.,])`

var (
	prefixRx = regexp.MustCompile(`(?i)(` + alternation(rules.PrefixCurrencies) + `)\s*` +
		numberPattern + `(?:\s?(` + multiplierAlternation() + `)\.?)?`)
	suffixRx = regexp.MustCompile(`(?i)` + digitBoundary + numberPattern +
		`(?:\s?(` + multiplierAlternation() + `)\.?)?` +
		`\s?((?-i:[A-Z]{3})|` + alternation(rules.SuffixCurrencies) + `)`)
)

// Normalizer finds monetary mentions and picks the largest one
type Normalizer struct {
	rates RateSource
}

// NewNormalizer creates a normalizer converting through rates
func NewNormalizer(rates RateSource) *Normalizer {
	return &Normalizer{rates: rates}
}

// Extract returns the mention with the highest reference value. Ties go to
// currency-before-number mentions. When the best candidate is not positive
// the error is a *ParseError wrapping ErrNoAmount.
func (n *Normalizer) Extract(ctx context.Context, text string) (*model.MonetaryMention, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoAmount
	}

	cands := n.Candidates(ctx, text)
	if len(cands) == 0 {
		return nil, ErrNoAmount
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Value > cands[j].Value
	})

	best := cands[0]
	if best.Value <= 0 {
		return nil, &ParseError{Currency: best.Currency, Span: best.Span, Err: ErrNoAmount}
	}
	return &best, nil
}

// Candidates returns every recognized mention, prefix matches first, in
// text order within each grammar.
func (n *Normalizer) Candidates(ctx context.Context, text string) []model.MonetaryMention {
	var out []model.MonetaryMention

	for _, m := range prefixRx.FindAllStringSubmatchIndex(text, -1) {
		cur, ok := NormalizeCurrency(text[m[2]:m[3]])
		if !ok {
			continue
		}
		end := m[1]
		mult := 1.0
		if m[6] >= 0 {
			if glued(text, m[7]) {
				end = m[5]
			} else {
				mult = Multiplier(text[m[6]:m[7]])
			}
		}
		out = append(out, n.mention(ctx, text[m[4]:m[5]], cur, mult, text[m[0]:end], true))
	}

	for _, m := range suffixRx.FindAllStringSubmatchIndex(text, -1) {
		if glued(text, m[7]) {
			continue
		}
		cur, ok := NormalizeCurrency(text[m[6]:m[7]])
		if !ok {
			continue
		}
		mult := 1.0
		if m[4] >= 0 {
			mult = Multiplier(text[m[4]:m[5]])
		}
		out = append(out, n.mention(ctx, text[m[2]:m[3]], cur, mult, text[m[2]:m[1]], false))
	}

	return out
}

func (n *Normalizer) mention(ctx context.Context, num, cur string, mult float64, span string, prefix bool) model.MonetaryMention {
	magnitude := ParseNumber(num)
	rate := 1.0
	if cur != "EUR" && n.rates != nil {
		rate = n.rates.RateToReference(ctx, cur)
	}
	value := magnitude * mult * rate
	if value < 0 {
		value = 0
	}
	return model.MonetaryMention{
		Magnitude:  magnitude,
		Currency:   cur,
		Multiplier: mult,
		Value:      value,
		Span:       strings.TrimSpace(span),
		Prefix:     prefix,
	}
}

// glued reports whether the token ending at end runs straight into a
// Latin or Cyrillic letter, as the "m" of "155mm" does.
func glued(text string, end int) bool {
	if end <= 0 || end >= len(text) {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(text[:end])
	next, _ := utf8.DecodeRuneInString(text[end:])
	return isWordLetter(last) && isWordLetter(next)
}

func isWordLetter(r rune) bool {
	return unicode.In(r, unicode.Latin, unicode.Cyrillic)
}

func alternation(tokens []string) string {
	sorted := append([]string(nil), tokens...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}

func multiplierAlternation() string {
	keys := make([]string, 0, len(rules.Multipliers))
	for k := range rules.Multipliers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return alternation(keys)
}
