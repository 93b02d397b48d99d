package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/scribe/pkg/domain"
)

const namespace = "scribe"

// Metrics groups the engine's collectors.
type Metrics struct {
	Inclusions        *prometheus.CounterVec
	OpenInclusions    prometheus.Gauge
	InclusionDepth    prometheus.Histogram
	Expansions        *prometheus.CounterVec
	ExpansionDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Inclusions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inclusions_total",
				Help:      "Include calls by outcome (admitted, rejected).",
			},
			[]string{"outcome"},
		),
		OpenInclusions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_inclusions",
			Help:      "Inclusions currently being expanded.",
		}),
		InclusionDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inclusion_depth",
			Help:      "Depth of admitted inclusions.",
			Buckets:   prometheus.LinearBuckets(1, 1, domain.DepthLimit),
		}),
		Expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "expansions_total",
				Help:      "Top-level expansions by context mode and result.",
			},
			[]string{"mode", "ok"},
		),
		ExpansionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "expansion_duration_seconds",
				Help:      "Duration of top-level expansions.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
	}

	for _, c := range []prometheus.Collector{m.Inclusions, m.OpenInclusions, m.InclusionDepth, m.Expansions, m.ExpansionDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// Hooks returns inclusion hooks that record into m.
func (m *Metrics) Hooks() domain.InclusionHooks {
	return domain.InclusionHooks{
		OnInclusionEnter: func(_ context.Context, e *domain.InclusionEvent) {
			m.Inclusions.WithLabelValues("admitted").Inc()
			m.OpenInclusions.Inc()
			m.InclusionDepth.Observe(float64(e.Depth))
		},
		OnInclusionLeave: func(context.Context, *domain.InclusionEvent) {
			m.OpenInclusions.Dec()
		},
		OnInclusionRejected: func(context.Context, *domain.InclusionEvent) {
			m.Inclusions.WithLabelValues("rejected").Inc()
		},
	}
}

// ObserveExpansion records one top-level expansion.
func (m *Metrics) ObserveExpansion(mode domain.ContextMode, took time.Duration, err error) {
	m.Expansions.WithLabelValues(mode.String(), strconv.FormatBool(err == nil)).Inc()
	m.ExpansionDuration.WithLabelValues(mode.String()).Observe(took.Seconds())
}
