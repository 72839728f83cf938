package doclink

import (
	"strings"
)

// Signature renders a parameter list for display on a symbol page:
//
//	(<span class="light"><a href="Number.html">Number</a> </span>x, y)
//
// Config-style parameters (names containing ".", such as "opts.debug") are
// omitted. Each parameter type is resolved as a symbol link. A nil or empty
// list renders as "()".
func (r *Resolver) Signature(params []Param) string {
	if len(params) == 0 {
		return "()"
	}

	parts := make([]string, 0, len(params))
	for _, p := range params {
		if strings.Contains(p.Name, ".") {
			continue
		}

		parts = append(parts, r.formatParam(p))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// SymbolSignature returns the signature of the registered symbol alias.
// The second result is false when the alias is not registered.
func (r *Resolver) SymbolSignature(alias string) (string, bool) {
	sym, ok := r.lookup(alias)
	if !ok {
		return "", false
	}

	return r.Signature(sym.Params), true
}

// formatParam renders a single parameter, linking its type when present.
func (r *Resolver) formatParam(p Param) string {
	if p.Type == "" {
		return p.Name
	}

	return `<span class="light">` + r.Link().AsSymbol(p.Type).String() + " </span>" + p.Name
}
