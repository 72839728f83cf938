package doclink

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	kindSymbol = "symbol"
	kindAnchor = "anchor"
	kindSource = "source"
	kindFile   = "file"

	outcomeResolved   = "resolved"
	outcomeUnresolved = "unresolved"
)

// Metrics counts link resolutions by destination kind and outcome. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	resolutions *prometheus.CounterVec
	substituted prometheus.Counter
}

// NewMetrics creates the resolver collectors and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doclink",
			Name:      "resolutions_total",
			Help:      "Link resolutions by destination kind and outcome.",
		}, []string{"kind", "outcome"}),
		substituted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doclink",
			Name:      "substituted_documents_total",
			Help:      "Documents passed through reference substitution.",
		}),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.resolutions, m.substituted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observe(kind, outcome string) {
	if m == nil {
		return
	}

	m.resolutions.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) document() {
	if m == nil {
		return
	}

	m.substituted.Inc()
}
