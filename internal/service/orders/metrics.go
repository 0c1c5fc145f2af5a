package orders

import "github.com/prometheus/client_golang/prometheus"

// Metrics carries the order lifecycle counters. Any field may be nil; the
// service then skips that counter.
type Metrics struct {
	Created        prometheus.Counter
	Transitions    *prometheus.CounterVec
	CodeMismatches prometheus.Counter
}

func (m Metrics) created() {
	if m.Created != nil {
		m.Created.Inc()
	}
}

func (m Metrics) transition(to string) {
	if m.Transitions != nil {
		m.Transitions.WithLabelValues(to).Inc()
	}
}

func (m Metrics) codeMismatch() {
	if m.CodeMismatches != nil {
		m.CodeMismatches.Inc()
	}
}
