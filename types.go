package doclink

import "strings"

// SymbolKind classifies a documented symbol.
type SymbolKind string

const (
	KindConstructor SymbolKind = "constructor"
	KindClass       SymbolKind = "class"
	KindNamespace   SymbolKind = "namespace"
	KindFunction    SymbolKind = "function"
	KindMethod      SymbolKind = "method"
	KindProperty    SymbolKind = "property"
	KindEvent       SymbolKind = "event"
	KindConfig      SymbolKind = "config"
)

// Param describes a single function parameter.
type Param struct {
	Name string `json:"name" yaml:"name" jsonschema:"parameter name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty" jsonschema:"parameter type expression"`
	Desc string `json:"desc,omitempty" yaml:"desc,omitempty" jsonschema:"parameter description"`
}

// Symbol is a documented symbol as seen by the resolver.
type Symbol struct {
	Alias             string     `json:"alias" yaml:"alias" jsonschema:"fully-qualified dotted name"`
	Name              string     `json:"name" yaml:"name" jsonschema:"short name"`
	Kind              SymbolKind `json:"kind,omitempty" yaml:"kind,omitempty" jsonschema:"symbol kind"`
	IsStatic          bool       `json:"static,omitempty" yaml:"static,omitempty" jsonschema:"whether the symbol is a static member"`
	IsInner           bool       `json:"inner,omitempty" yaml:"inner,omitempty" jsonschema:"whether the symbol is an inner member"`
	ParentConstructor string     `json:"parent_constructor,omitempty" yaml:"parent_constructor,omitempty" jsonschema:"alias of the enclosing class"`
	MemberOf          string     `json:"memberof,omitempty" yaml:"memberof,omitempty" jsonschema:"alias of the enclosing symbol"`
	Desc              string     `json:"desc,omitempty" yaml:"desc,omitempty" jsonschema:"symbol description"`
	SrcFile           string     `json:"src_file,omitempty" yaml:"src_file,omitempty" jsonschema:"source file the symbol was declared in"`
	Params            []Param    `json:"params,omitempty" yaml:"params,omitempty" jsonschema:"function parameters"`
}

// IsConstructor reports whether the symbol documents a class or constructor
// and therefore owns a page of its own.
func (s Symbol) IsConstructor() bool {
	return s.Kind == KindConstructor || s.Kind == KindClass
}

// Get returns the named string attribute of the symbol. The second result is
// false when the attribute is unknown or empty.
func (s Symbol) Get(attr string) (string, bool) {
	var v string

	switch strings.ToLower(attr) {
	case "alias":
		v = s.Alias
	case "name":
		v = s.Name
	case "kind":
		v = string(s.Kind)
	case "memberof":
		v = s.MemberOf
	case "parent_constructor", "parentconstructor":
		v = s.ParentConstructor
	case "desc":
		v = s.Desc
	case "src_file", "srcfile":
		v = s.SrcFile
	default:
		return "", false
	}

	return v, v != ""
}

// linkName is the in-page anchor of a member symbol. Static members are
// prefixed with ".", inner members with "-".
func (s Symbol) linkName() string {
	switch {
	case s.IsStatic:
		return "." + s.Name
	case s.IsInner:
		return "-" + s.Name
	default:
		return s.Name
	}
}

// UnresolvedRef records a reference that could not be resolved against the
// registry.
type UnresolvedRef struct {
	Name  string `json:"name" jsonschema:"unresolved token"`
	Count int    `json:"count" jsonschema:"number of occurrences"`
}
