package doclink_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.dw1.io/doclink"
)

func TestNewRegistry(t *testing.T) {
	reg, err := doclink.NewRegistry(
		doclink.Symbol{Alias: " Pkg.Foo ", Kind: doclink.KindClass},
		doclink.Symbol{Alias: "Pkg.Foo.bar", Name: "custom"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reg.Len() != 2 {
		t.Fatalf("Expected 2 symbols, got %d", reg.Len())
	}

	sym, ok := reg.Lookup("Pkg.Foo")
	if !ok {
		t.Fatalf("Expected trimmed alias Pkg.Foo to be registered")
	}
	if sym.Name != "Foo" {
		t.Errorf("Expected derived name Foo, got %q", sym.Name)
	}

	sym, ok = reg.Lookup("Pkg.Foo.bar")
	if !ok {
		t.Fatalf("Expected Pkg.Foo.bar to be registered")
	}
	if sym.Name != "custom" {
		t.Errorf("Expected explicit name to be kept, got %q", sym.Name)
	}

	if _, ok := reg.Lookup("Pkg"); ok {
		t.Errorf("Expected Pkg to be missing")
	}
}

func TestNewRegistryErrors(t *testing.T) {
	if _, err := doclink.NewRegistry(doclink.Symbol{Alias: "  "}); !errors.Is(err, doclink.ErrEmptyAlias) {
		t.Errorf("Expected ErrEmptyAlias, got %v", err)
	}

	_, err := doclink.NewRegistry(doclink.Symbol{Alias: "A"}, doclink.Symbol{Alias: "A"})
	if !errors.Is(err, doclink.ErrDuplicateSymbol) {
		t.Errorf("Expected ErrDuplicateSymbol, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Expected MustRegistry to panic")
		}
	}()
	doclink.MustRegistry(doclink.Symbol{})
}

func TestNilRegistry(t *testing.T) {
	var reg *doclink.MapRegistry

	if _, ok := reg.Lookup("A"); ok {
		t.Errorf("Expected lookup on nil registry to fail")
	}
	if reg.Len() != 0 {
		t.Errorf("Expected length 0, got %d", reg.Len())
	}
	if reg.Symbols() != nil {
		t.Errorf("Expected nil symbols")
	}
}

func TestRegistrySymbolsSorted(t *testing.T) {
	reg := doclink.MustRegistry(
		doclink.Symbol{Alias: "c"},
		doclink.Symbol{Alias: "a"},
		doclink.Symbol{Alias: "b"},
	)

	var aliases []string
	for _, s := range reg.Symbols() {
		aliases = append(aliases, s.Alias)
	}

	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(aliases, want) {
		t.Errorf("Expected %v, got %v", want, aliases)
	}
}

func TestDecodeRegistryYAML(t *testing.T) {
	const snapshot = `symbols:
  - alias: Pkg.Foo
    kind: constructor
    desc: A foo.
    src_file: lib/foo.js
  - alias: Pkg.Foo.bar
    kind: method
    static: true
    parent_constructor: Pkg.Foo
    memberof: Pkg.Foo
    params:
      - name: x
        type: Number
`

	reg, err := doclink.DecodeRegistry(strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Expected 2 symbols, got %d", reg.Len())
	}

	bar, ok := reg.Lookup("Pkg.Foo.bar")
	if !ok {
		t.Fatalf("Expected Pkg.Foo.bar")
	}
	if !bar.IsStatic || bar.ParentConstructor != "Pkg.Foo" {
		t.Errorf("Expected static member of Pkg.Foo, got %+v", bar)
	}
	if want := []doclink.Param{{Name: "x", Type: "Number"}}; !reflect.DeepEqual(bar.Params, want) {
		t.Errorf("Expected params %v, got %v", want, bar.Params)
	}

	foo, ok := reg.Lookup("Pkg.Foo")
	if !ok {
		t.Fatalf("Expected Pkg.Foo")
	}
	if foo.SrcFile != "lib/foo.js" || !foo.IsConstructor() {
		t.Errorf("Unexpected symbol %+v", foo)
	}
}

func TestDecodeRegistryJSON(t *testing.T) {
	const snapshot = `{"symbols": [{"alias": "Pkg.Foo", "kind": "class"}, {"alias": "Pkg.Foo.x", "inner": true}]}`

	reg, err := doclink.DecodeRegistry(strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	x, ok := reg.Lookup("Pkg.Foo.x")
	if !ok {
		t.Fatalf("Expected Pkg.Foo.x")
	}
	if !x.IsInner {
		t.Errorf("Expected inner member")
	}
}

func TestDecodeRegistryEmpty(t *testing.T) {
	reg, err := doclink.DecodeRegistry(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Expected empty registry, got %d symbols", reg.Len())
	}
}

func TestDecodeRegistryInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown field": "symbols:\n  - alias: A\n    colour: red\n",
		"wrong type":    "symbols: 3\n",
		"syntax":        "symbols: [\n",
	}

	for name, snapshot := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := doclink.DecodeRegistry(strings.NewReader(snapshot))
			if !errors.Is(err, doclink.ErrInvalidRegistry) {
				t.Errorf("Expected ErrInvalidRegistry, got %v", err)
			}
		})
	}
}

func TestDecodeRegistryDuplicate(t *testing.T) {
	_, err := doclink.DecodeRegistry(strings.NewReader("symbols:\n  - alias: A\n  - alias: A\n"))
	if !errors.Is(err, doclink.ErrDuplicateSymbol) {
		t.Errorf("Expected ErrDuplicateSymbol, got %v", err)
	}
}
