package money

import (
	"strconv"
	"strings"

	"github.com/ppiankov/aidtrace/internal/rules"
)

// ParseNumber converts a number written with locale-ambiguous separators.
// When both "," and "." occur, the one occurring last is the decimal point;
// a lone "," is a thousands separator. Spaces are thousands separators.
// Unparseable input yields 0.
func ParseNumber(num string) float64 {
	s := strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' || r == ' ' || r == '\u2009' || r == '\t' {
			return -1
		}
		return r
	}, num)

	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}

	// Keep digits and the first decimal point only
	var b strings.Builder
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dot:
			dot = true
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// Multiplier returns the scale of a magnitude word, 1 when unknown
func Multiplier(tok string) float64 {
	t := strings.Trim(strings.ToLower(strings.TrimSpace(tok)), ".")
	if t == "" {
		return 1
	}
	if m, ok := rules.Multipliers[t]; ok {
		return m
	}
	return 1
}

// NormalizeCurrency maps a symbol, code or currency word to an ISO code.
// A bare three-letter uppercase token is taken verbatim.
func NormalizeCurrency(tok string) (string, bool) {
	t := strings.TrimSpace(tok)
	if code, ok := rules.CurrencyTags[strings.ToLower(t)]; ok {
		return code, true
	}
	if len(t) == 3 && isUpperASCII(t) {
		return t, true
	}
	return "", false
}

func isUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
