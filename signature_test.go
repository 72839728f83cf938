package doclink_test

import (
	"testing"

	"go.dw1.io/doclink"
)

func TestSignature(t *testing.T) {
	r := newFixtureResolver()

	params := []doclink.Param{
		{Name: "x", Type: "Number"},
		{Name: "opts", Type: "Object"},
		{Name: "opts.debug", Type: "Boolean"},
		{Name: "cb"},
	}

	want := `(<span class="light"><a href="Number.html">Number</a> </span>x, ` +
		`<span class="light">Object </span>opts, cb)`
	if got := r.Signature(params); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSignatureEmpty(t *testing.T) {
	r := newFixtureResolver()

	for _, params := range [][]doclink.Param{nil, {}, {{Name: "opts.debug"}}} {
		if got := r.Signature(params); got != "()" {
			t.Errorf("Expected () for %v, got %q", params, got)
		}
	}
}

func TestSignatureTypeExpression(t *testing.T) {
	r := newFixtureResolver()

	got := r.Signature([]doclink.Param{{Name: "items", Type: "Array.<Pkg.Foo>"}})
	want := `(<span class="light">Array.<<a href="Pkg.Foo.html">Pkg.Foo</a>> </span>items)`
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSymbolSignature(t *testing.T) {
	r := doclink.New(doclink.WithRegistry(doclink.MustRegistry(
		doclink.Symbol{Alias: "add", Kind: doclink.KindFunction, Params: []doclink.Param{{Name: "a"}, {Name: "b"}}},
	)))

	sig, ok := r.SymbolSignature("add")
	if !ok {
		t.Fatalf("Expected signature for add")
	}
	if sig != "(a, b)" {
		t.Errorf("Expected (a, b), got %q", sig)
	}

	if _, ok := r.SymbolSignature("sub"); ok {
		t.Errorf("Expected no signature for unregistered sub")
	}
}
