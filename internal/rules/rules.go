// Package rules holds the priority-ordered pattern tables used by the
// extractors. Order inside every table is significant: the first matching
// rule wins.
package rules

import "regexp"

// Rule pairs a pattern with the value it yields
type Rule[T any] struct {
	Pattern *regexp.Regexp
	Value   T
}

// Table is an ordered list of rules
type Table[T any] []Rule[T]

// First returns the value of the first rule that matches text
func (t Table[T]) First(text string) (T, bool) {
	for _, r := range t {
		if r.Pattern.MatchString(text) {
			return r.Value, true
		}
	}
	var zero T
	return zero, false
}

// All returns the values of every matching rule, in table order
func (t Table[T]) All(text string) []T {
	var out []T
	for _, r := range t {
		if r.Pattern.MatchString(text) {
			out = append(out, r.Value)
		}
	}
	return out
}

func rule[T any](pattern string, value T) Rule[T] {
	return Rule[T]{Pattern: regexp.MustCompile(pattern), Value: value}
}
