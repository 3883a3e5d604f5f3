package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the zone service.
type Metrics struct {
	ScenariosAdded    prometheus.Counter
	ScenariosCleared  prometheus.Counter
	ScenariosRejected *prometheus.CounterVec // labels: reason={gas_not_found,invalid_input,import_row}
	Calculations      *prometheus.CounterVec // labels: outcome={success,error}
	Exports           *prometheus.CounterVec // labels: format={pdf,xlsx,diagram}, outcome={success,error}
	GasTableSize      prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ScenariosAdded,
		m.ScenariosCleared,
		m.ScenariosRejected,
		m.Calculations,
		m.Exports,
		m.GasTableSize,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as many
// as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ScenariosAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atex",
			Name:      "scenarios_added_total",
			Help:      "Scenarios appended to a workspace.",
		}),
		ScenariosCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atex",
			Name:      "scenarios_cleared_total",
			Help:      "Workspace clear operations.",
		}),
		ScenariosRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atex",
			Name:      "scenarios_rejected_total",
			Help:      "Scenario submissions rejected before calculation.",
		}, []string{"reason"}),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atex",
			Name:      "calculations_total",
			Help:      "Zone calculations by outcome.",
		}, []string{"outcome"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atex",
			Name:      "exports_total",
			Help:      "Report and diagram exports by format and outcome.",
		}, []string{"format", "outcome"}),
		GasTableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "atex",
			Name:      "gas_table_size",
			Help:      "Number of gases in the loaded table.",
		}),
	}
}

// Outcome maps an error to the outcome label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
