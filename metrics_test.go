package doclink_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.dw1.io/doclink"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := doclink.NewMetrics(reg)
	require.NoError(t, err)

	r := newFixtureResolver(doclink.WithMetrics(m))
	r.Substitute("{@link Pkg.Foo} {@link Nope} {@link #top}")
	_ = r.Link().AsSource("a.js").String()
	_ = r.Link().AsFile("index.html").String()
	_ = r.Link().To(doclink.AnchorTarget{Anchor: "#top"}).String()

	want := `
# HELP doclink_resolutions_total Link resolutions by destination kind and outcome.
# TYPE doclink_resolutions_total counter
doclink_resolutions_total{kind="anchor",outcome="resolved"} 2
doclink_resolutions_total{kind="file",outcome="resolved"} 1
doclink_resolutions_total{kind="source",outcome="resolved"} 1
doclink_resolutions_total{kind="symbol",outcome="resolved"} 1
doclink_resolutions_total{kind="symbol",outcome="unresolved"} 1
# HELP doclink_substituted_documents_total Documents passed through reference substitution.
# TYPE doclink_substituted_documents_total counter
doclink_substituted_documents_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want)))
}

func TestMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := doclink.NewMetrics(reg)
	require.NoError(t, err)

	_, err = doclink.NewMetrics(reg)
	assert.Error(t, err)
}

func TestMetricsUnregistered(t *testing.T) {
	m, err := doclink.NewMetrics(nil)
	require.NoError(t, err)

	r := newFixtureResolver(doclink.WithMetrics(m))
	assert.NotEmpty(t, r.Substitute("{@link Pkg.Foo}"))
}
