package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alexiusacademia/gowst/internal/sweep"
)

// Analysis kinds used as metric labels
const (
	kindStress   = "stress"
	kindTensile  = "tensile"
	kindBreakout = "breakout"
)

// sweepKind maps a sweep mode to its metric label
func sweepKind(m sweep.Mode) string {
	if m == sweep.ModeBreakout {
		return kindBreakout
	}
	return kindTensile
}

// Metrics tracks analysis throughput and latency and scenario changes.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	SweepCells       prometheus.Counter
	ScenariosCreated prometheus.Counter
	ScenariosDeleted prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gowst_analyses_total",
			Help: "Total number of analyses by kind and outcome",
		}, []string{"kind", "outcome"}),
		AnalysisDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gowst_analysis_duration_seconds",
			Help:    "Duration of analyses by kind",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"kind"}),
		SweepCells: f.NewCounter(prometheus.CounterOpts{
			Name: "gowst_sweep_cells_total",
			Help: "Total number of orientation cells evaluated by sweeps",
		}),
		ScenariosCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "gowst_scenarios_created_total",
			Help: "Total number of scenarios created",
		}),
		ScenariosDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "gowst_scenarios_deleted_total",
			Help: "Total number of scenarios deleted",
		}),
	}
}

// ObserveAnalysis records one analysis of the given kind.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAnalysis(kind string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.AnalysesTotal.WithLabelValues(kind, outcome).Inc()
	m.AnalysisDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// AddSweepCells records the number of cells of a finished sweep.
func (m *Metrics) AddSweepCells(n int) {
	m.SweepCells.Add(float64(n))
}
