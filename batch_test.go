package doclink_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"go.dw1.io/doclink"
)

func TestSubstituteAllKeepsOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newFixtureResolver(doclink.WithWorkers(3))

	texts := make([]string, 50)
	want := make([]string, 50)
	for i := range texts {
		texts[i] = fmt.Sprintf("%d: {@link Pkg.Foo}", i)
		want[i] = fmt.Sprintf(`%d: <a href="Pkg.Foo.html">Pkg.Foo</a>`, i)
	}

	got, err := r.SubstituteAll(context.Background(), texts)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSubstituteAllEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)

	got, err := newFixtureResolver().SubstituteAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSubstituteAllCollectsUnresolved(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newFixtureResolver(doclink.WithWorkers(4))

	texts := []string{"{@link Nope}", "{@link Nope}", "{@link Other}", "{@link Pkg.Foo}"}
	_, err := r.SubstituteAll(context.Background(), texts)
	require.NoError(t, err)

	assert.Equal(t, []doclink.UnresolvedRef{
		{Name: "Nope", Count: 2},
		{Name: "Other", Count: 1},
	}, r.Unresolved())
}

func TestSubstituteAllCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFixtureResolver().SubstituteAll(ctx, []string{"{@link Pkg.Foo}"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubstituteAllBaseContextCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newFixtureResolver(doclink.WithContext(ctx))

	_, err := r.SubstituteAll(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubstituteAllNilContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newFixtureResolver(doclink.WithWorkers(0))

	//nolint:staticcheck // nil falls back to the resolver's base context.
	got, err := r.SubstituteAll(nil, []string{"{@link helper}"})
	require.NoError(t, err)
	assert.Equal(t, []string{`<a href="_global_.html#helper">helper</a>`}, got)
}

func TestSubstituteAllWorkersResetAfterNew(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, n := range []int{0, -3} {
		r := newFixtureResolver()
		r.SetOptions(doclink.WithWorkers(n))

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)

		got, err := r.SubstituteAll(ctx, []string{"a", "{@link helper}"})
		cancel()

		require.NoError(t, err, "workers=%d", n)
		assert.Equal(t, []string{"a", `<a href="_global_.html#helper">helper</a>`}, got)
	}
}
