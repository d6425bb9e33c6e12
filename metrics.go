package gdbjs

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskcluster/gdb-js/internal/dispatch"
)

// PrometheusMetrics wraps the counter and histogram a Client's dispatcher
// uses to record dispatched-command volume and latency.
type PrometheusMetrics struct {
	commandsTotal   prometheus.Counter
	commandDuration prometheus.Histogram
}

// NewPrometheusMetrics builds collectors under namespace and registers them
// with reg. Pass the result to WithMetrics via its AsDispatchMetrics method.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		commandsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total MI/CLI commands dispatched to the GDB subprocess.",
		}),
		commandDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Latency of a dispatched command from write to result record.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.commandsTotal, m.commandDuration)
	return m
}

// AsDispatchMetrics adapts m to the internal/dispatch.Metrics hook shape
// expected by WithMetrics.
func (m *PrometheusMetrics) AsDispatchMetrics() dispatch.Metrics {
	return dispatch.Metrics{
		Count:   m.commandsTotal.Inc,
		Observe: m.commandDuration.Observe,
	}
}
