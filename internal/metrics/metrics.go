// Package metrics exposes the run's findings as Prometheus metrics written
// in textfile-collector format. A one-shot process has nothing to scrape, so
// the counters are flushed to disk at the end of the run instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	runsTotal     prometheus.Counter
	tradesChecked prometheus.Counter
	pnlMismatches prometheus.Counter
	checksTotal   *prometheus.CounterVec
	issuesTotal   prometheus.Counter
	runDuration   prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		Registry: reg,

		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "veritas_runs_total",
			Help: "Total number of verification runs",
		}),
		tradesChecked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "veritas_trades_checked_total",
			Help: "Total number of trades whose P&L was recomputed",
		}),
		pnlMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "veritas_pnl_mismatches_total",
			Help: "Total number of trades whose reported P&L did not reproduce",
		}),
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "veritas_checks_total",
				Help: "Total number of checks run, by check and status",
			},
			[]string{"check", "status"},
		),
		issuesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "veritas_issues_total",
			Help: "Total number of realism issues flagged",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "veritas_run_duration_seconds",
			Help: "Duration of the last verification run in seconds",
		}),
	}

	reg.MustRegister(r.runsTotal)
	reg.MustRegister(r.tradesChecked)
	reg.MustRegister(r.pnlMismatches)
	reg.MustRegister(r.checksTotal)
	reg.MustRegister(r.issuesTotal)
	reg.MustRegister(r.runDuration)

	return r
}

// RecordRun records the outcome of one verification run.
func (r *Registry) RecordRun(tradesChecked, pnlMismatches, issues int, duration float64) {
	r.runsTotal.Inc()
	r.tradesChecked.Add(float64(tradesChecked))
	r.pnlMismatches.Add(float64(pnlMismatches))
	r.issuesTotal.Add(float64(issues))
	r.runDuration.Set(duration)
}

// RecordCheck records a single named check result.
func (r *Registry) RecordCheck(check string, pass bool) {
	status := "pass"
	if !pass {
		status = "fail"
	}
	r.checksTotal.WithLabelValues(check, status).Inc()
}

// WriteTextfile flushes the registry to path in textfile-collector format.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r)
}
