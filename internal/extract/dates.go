package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ppiankov/aidtrace/internal/rules"
)

type datePatterns struct {
	named     *regexp.Regexp
	yearFirst *regexp.Regexp
	months    map[string]int
	monthDay  bool // D/M/Y slashes read as M/D/Y
}

var (
	isoDate    = regexp.MustCompile(`(?:^|[^\d])(\d{4})-(\d{1,2})(?:-(\d{1,2}))?(?:[^\d]|$)`)
	dottedDate = regexp.MustCompile(`(?:^|[^\d.])(\d{1,2})\.\s?(\d{1,2})\.\s?(\d{4})(?:[^\d]|$)`)
	slashDate  = regexp.MustCompile(`(?:^|[^\d/])(\d{1,2})/(\d{1,2})/(\d{4})(?:[^\d]|$)`)
	cjkDate    = regexp.MustCompile(`(\d{4})\s*[年년]\s*(\d{1,2})\s*[月월]`)

	patternCache sync.Map // key: joined languages
)

type dateHit struct {
	pos   int
	year  int
	month int
}

// Month returns the first date in text, in text order, whose year lies in
// the accepted evidence window, formatted "YYYY-MM". Month names are
// searched for the given languages; numeric and CJK forms always apply.
func Month(text string, langs ...string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	if len(langs) == 0 {
		langs = []string{rules.DefaultLanguage}
	}

	p := patternsFor(langs)
	folded := rules.Fold(text)

	var hits []dateHit
	for _, m := range p.named.FindAllStringSubmatchIndex(folded, -1) {
		hits = append(hits, dateHit{pos: m[4], year: atoi(folded, m[8], m[9]), month: p.months[folded[m[4]:m[5]]]})
	}
	for _, m := range p.yearFirst.FindAllStringSubmatchIndex(folded, -1) {
		hits = append(hits, dateHit{pos: m[2], year: atoi(folded, m[2], m[3]), month: p.months[folded[m[4]:m[5]]]})
	}
	for _, m := range isoDate.FindAllStringSubmatchIndex(folded, -1) {
		hits = append(hits, dateHit{pos: m[2], year: atoi(folded, m[2], m[3]), month: atoi(folded, m[4], m[5])})
	}
	for _, m := range dottedDate.FindAllStringSubmatchIndex(folded, -1) {
		hits = append(hits, dateHit{pos: m[2], year: atoi(folded, m[6], m[7]), month: atoi(folded, m[4], m[5])})
	}
	for _, m := range slashDate.FindAllStringSubmatchIndex(folded, -1) {
		first, second := atoi(folded, m[2], m[3]), atoi(folded, m[4], m[5])
		month := second
		if (p.monthDay && first <= 12) || second > 12 {
			month = first
		}
		hits = append(hits, dateHit{pos: m[2], year: atoi(folded, m[6], m[7]), month: month})
	}
	for _, m := range cjkDate.FindAllStringSubmatchIndex(folded, -1) {
		hits = append(hits, dateHit{pos: m[2], year: atoi(folded, m[2], m[3]), month: atoi(folded, m[4], m[5])})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	for _, h := range hits {
		if h.year < rules.MinEvidenceYear || h.year > rules.MaxEvidenceYear {
			continue
		}
		if h.month < 1 || h.month > 12 {
			continue
		}
		return fmt.Sprintf("%04d-%02d", h.year, h.month), true
	}
	return "", false
}

func patternsFor(langs []string) *datePatterns {
	key := strings.Join(langs, ",")
	if v, ok := patternCache.Load(key); ok {
		return v.(*datePatterns)
	}

	names := rules.MonthNames(langs...)
	months := make(map[string]int, len(names))
	alts := make([]string, 0, len(names))
	for _, mn := range names {
		months[mn.Name] = mn.Month
		alts = append(alts, regexp.QuoteMeta(mn.Name))
	}
	alt := strings.Join(alts, "|")
	if alt == "" {
		// Never matches
		alt = `\x{10FFFF}`
	}

	p := &datePatterns{
		named: regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?:(\d{1,2})(?:st|nd|rd|th)?\.?\s+(?:of\s+)?)?(` + alt +
			`)\.?(?:\s+(\d{1,2})(?:st|nd|rd|th)?)?,?\s+(\d{4})(?:[^\d]|$)`),
		yearFirst: regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(\d{4})\.?\s+(` + alt + `)(?:[^\p{L}]|$)`),
		months:    months,
		monthDay:  langs[0] == "en",
	}
	patternCache.Store(key, p)
	return p
}

func atoi(s string, start, end int) int {
	if start < 0 || end < 0 {
		return 0
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0
	}
	return n
}
