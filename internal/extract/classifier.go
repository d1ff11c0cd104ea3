package extract

import (
	"context"

	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/money"
	"github.com/ppiankov/aidtrace/internal/rules"
)

const (
	deliveryWindow = 200  // runes either side of the first delivery verb
	edgeWindow     = 1200 // runes from each end of the document
)

// Classifier turns document text into Evidence
type Classifier struct {
	normalizer *money.Normalizer
}

// NewClassifier creates a classifier that prices amounts through n.
// A nil normalizer disables amount extraction.
func NewClassifier(n *money.Normalizer) *Classifier {
	return &Classifier{normalizer: n}
}

// Classify extracts status, month, items, source category and amount from
// one document. It never fails; missing signals are left blank.
func (c *Classifier) Classify(ctx context.Context, url string, kind model.DocumentKind, text, country string) model.Evidence {
	ev := model.Evidence{
		URL:     url,
		Kind:    kind,
		Status:  Status(text),
		Source:  Source(text),
		Month:   EvidenceMonth(text, country),
		Items:   Items(text),
		RawText: truncate(text, model.MaxEvidenceText),
	}

	if c.normalizer != nil {
		if m, err := c.normalizer.Extract(ctx, text); err == nil {
			ev.Money = m
		}
	}
	return ev
}

// Status returns delivered when a delivery verb appears, else commitment
func Status(text string) model.Status {
	if s, ok := rules.StatusRules.First(text); ok {
		return s
	}
	return rules.DefaultStatus
}

// Source returns the first matching source family, else unknown
func Source(text string) model.SourceCategory {
	if s, ok := rules.SourceRules.First(text); ok {
		return s
	}
	return model.SourceUnknown
}

// EvidenceMonth searches near the first delivery verb, then the head and
// tail of the document, in the country's language plus English.
func EvidenceMonth(text, country string) string {
	langs := []string{rules.LanguageFor(country)}
	if langs[0] != rules.DefaultLanguage {
		langs = append(langs, rules.DefaultLanguage)
	}

	runes := []rune(text)
	if loc := rules.DeliveryPattern.FindStringIndex(text); loc != nil {
		at := len([]rune(text[:loc[0]]))
		lo := max(0, at-deliveryWindow)
		hi := min(len(runes), at+deliveryWindow)
		if m, ok := Month(string(runes[lo:hi]), langs...); ok {
			return m
		}
	}

	if m, ok := Month(edges(runes), langs...); ok {
		return m
	}
	return ""
}

func edges(runes []rune) string {
	if len(runes) <= 2*edgeWindow {
		return string(runes)
	}
	return string(runes[:edgeWindow]) + " \n " + string(runes[len(runes)-edgeWindow:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
