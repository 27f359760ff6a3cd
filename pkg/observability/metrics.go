package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/strata/pkg/ports"
)

// Metrics records conversion outcomes and column shapes.
type Metrics struct {
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	layers      *prometheus.HistogramVec
	gaps        *prometheus.CounterVec
	overlaps    *prometheus.CounterVec
}

var _ ports.Recorder = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them on reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strata_conversions_total",
				Help: "Total number of conversions by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "strata_conversion_duration_seconds",
				Help:    "Duration of conversions including the external call",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		layers: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "strata_column_layers",
				Help:    "Number of real layers per completed column",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"kind"},
		),
		gaps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strata_column_gaps_total",
				Help: "Total number of synthesized gaps",
			},
			[]string{"kind"},
		),
		overlaps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strata_column_overlaps_total",
				Help: "Total number of flagged layer bounds",
			},
			[]string{"kind"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.conversions, m.duration, m.layers, m.gaps, m.overlaps} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// ObserveConversion implements ports.Recorder.
func (m *Metrics) ObserveConversion(kind, outcome string, elapsed time.Duration) {
	m.conversions.WithLabelValues(kind, outcome).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveColumn implements ports.Recorder.
func (m *Metrics) ObserveColumn(kind string, layers, gaps, flagged int) {
	m.layers.WithLabelValues(kind).Observe(float64(layers))
	m.gaps.WithLabelValues(kind).Add(float64(gaps))
	m.overlaps.WithLabelValues(kind).Add(float64(flagged))
}
