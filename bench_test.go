package doclink_test

import (
	"context"
	"strings"
	"testing"

	"go.dw1.io/doclink"
)

func BenchmarkSymbolLink(b *testing.B) {
	r := newFixtureResolver()
	for b.Loop() {
		_ = r.Link().AsSymbol("Pkg.Foo.bar").String()
	}
}

func BenchmarkSubstitute(b *testing.B) {
	r := newFixtureResolver()
	text := strings.Repeat("See {@link Pkg.Foo} and {@link Array.<Number>} for details. ", 100)

	for b.Loop() {
		_ = r.Substitute(text)
	}
}

func BenchmarkSubstituteAll(b *testing.B) {
	r := newFixtureResolver(doclink.WithWorkers(4))

	texts := make([]string, 64)
	for i := range texts {
		texts[i] = strings.Repeat("{@link Pkg.Foo.baz} ", 20)
	}

	for b.Loop() {
		if _, err := r.SubstituteAll(context.Background(), texts); err != nil {
			b.Fatal(err)
		}
	}
}
