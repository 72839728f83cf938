package doclink

import (
	"strings"
)

// Summarize returns the first sentence of desc: the shortest prefix ending in
// a period that is followed by something other than a letter or digit. When
// desc has no such sentence boundary it is returned unchanged.
func Summarize(desc string) string {
	m := summaryRegex.FindStringSubmatch(desc)
	if m == nil {
		return desc
	}

	return m[1]
}

// SortBy returns a comparator ordering symbols by the case-insensitive value
// of attr, for use with [slices.SortStableFunc]. Symbols lacking the
// attribute compare as equal to everything.
func SortBy(attr string) func(a, b Symbol) int {
	return func(a, b Symbol) int {
		av, aok := a.Get(attr)
		bv, bok := b.Get(attr)
		if !aok || !bok {
			return 0
		}

		return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
	}
}
