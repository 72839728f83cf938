package doclink

import "strings"

// Substitute replaces every {@link Alias} marker in text with the HTML link
// resolved for Alias. Markers that do not resolve are replaced by the bare
// alias. All other text, including malformed markers, is left untouched.
func (r *Resolver) Substitute(text string) string {
	r.metrics.document()

	matches := linkTagRegex.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))

	last := 0
	for _, m := range matches {
		sb.WriteString(text[last:m[0]])
		sb.WriteString(r.Link().AsSymbol(text[m[2]:m[3]]).String())
		last = m[1]
	}
	sb.WriteString(text[last:])

	return sb.String()
}
