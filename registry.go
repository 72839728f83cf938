package doclink

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry looks up documented symbols by their fully-qualified alias.
//
// Implementations must be safe for concurrent reads; the resolver never
// mutates a registry.
type Registry interface {
	Lookup(alias string) (Symbol, bool)
}

// MapRegistry is an immutable, map-backed [Registry] snapshot.
type MapRegistry struct {
	symbols map[string]Symbol
}

var _ Registry = (*MapRegistry)(nil)

// NewRegistry builds a snapshot from the given symbols. Every symbol must
// carry a non-empty alias and aliases must be unique. An empty Name is
// derived from the alias.
func NewRegistry(symbols ...Symbol) (*MapRegistry, error) {
	r := &MapRegistry{symbols: make(map[string]Symbol, len(symbols))}

	for i, sym := range symbols {
		sym.Alias = strings.TrimSpace(sym.Alias)
		if sym.Alias == "" {
			return nil, fmt.Errorf("symbol #%d: %w", i, ErrEmptyAlias)
		}

		if _, ok := r.symbols[sym.Alias]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, sym.Alias)
		}

		if sym.Name == "" {
			sym.Name = ShortName(sym.Alias)
		}

		r.symbols[sym.Alias] = sym
	}

	return r, nil
}

// MustRegistry is like [NewRegistry] but panics on error. It is intended for
// tests and package-level fixtures.
func MustRegistry(symbols ...Symbol) *MapRegistry {
	r, err := NewRegistry(symbols...)
	if err != nil {
		panic(err)
	}

	return r
}

// Lookup implements [Registry].
func (r *MapRegistry) Lookup(alias string) (Symbol, bool) {
	if r == nil {
		return Symbol{}, false
	}

	sym, ok := r.symbols[alias]

	return sym, ok
}

// Len returns the number of symbols in the snapshot.
func (r *MapRegistry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.symbols)
}

// Symbols returns a copy of all symbols ordered by alias.
func (r *MapRegistry) Symbols() []Symbol {
	if r == nil {
		return nil
	}

	out := make([]Symbol, 0, len(r.symbols))
	for _, sym := range r.symbols {
		out = append(out, sym)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })

	return out
}

// registrySnapshot is the on-disk shape of a registry.
type registrySnapshot struct {
	Symbols []Symbol `yaml:"symbols"`
}

// DecodeRegistry reads a YAML (or JSON) registry snapshot of the form
//
//	symbols:
//	  - alias: Pkg.Foo
//	    kind: constructor
//	  - alias: Pkg.Foo.bar
//	    static: true
//	    parent_constructor: Pkg.Foo
func DecodeRegistry(r io.Reader) (*MapRegistry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	symbols, err := decodeSymbols(data)
	if err != nil {
		return nil, err
	}

	return NewRegistry(symbols...)
}

func decodeSymbols(data []byte) ([]Symbol, error) {
	var snap registrySnapshot

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&snap); err != nil {
		if err == io.EOF {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: %v", ErrInvalidRegistry, err)
	}

	return snap.Symbols, nil
}
