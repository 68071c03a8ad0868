// Package metrics exposes matching and fetch outcomes as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/costlens/backend/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.MatchObserver, numbeo.FetchObserver and the HTTP
// handler's lookup observer
type Recorder struct {
	labelMatches  *prometheus.CounterVec
	droppedRows   prometheus.Counter
	pageFetches   *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	lookups       *prometheus.CounterVec
}

// NewRecorder registers the collectors with reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		labelMatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costlens_label_matches_total",
				Help: "Scraped labels handled by the matching engine, by resolving tier",
			},
			[]string{"tier"},
		),
		droppedRows: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "costlens_rows_dropped_total",
				Help: "Scraped rows dropped because their price had no numeric value",
			},
		),
		pageFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costlens_page_fetches_total",
				Help: "Page fetch attempts, by outcome",
			},
			[]string{"outcome"},
		),
		fetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "costlens_page_fetch_duration_milliseconds",
				Help:    "Page fetch attempt duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(10, 2, 10),
			},
		),
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costlens_lookups_total",
				Help: "City lookups served, by status",
			},
			[]string{"status"},
		),
	}
}

// ObserveMatch counts a resolved or unmatched label
func (r *Recorder) ObserveMatch(tier domain.MatchTier) {
	r.labelMatches.WithLabelValues(string(tier)).Inc()
}

// ObserveDroppedRow counts a row without a numeric price
func (r *Recorder) ObserveDroppedRow() {
	r.droppedRows.Inc()
}

// ObserveFetch records one page fetch attempt
func (r *Recorder) ObserveFetch(outcome string, duration time.Duration) {
	r.pageFetches.WithLabelValues(outcome).Inc()
	r.fetchDuration.Observe(float64(duration.Milliseconds()))
}

// ObserveLookup counts a finished lookup request
func (r *Recorder) ObserveLookup(status string) {
	r.lookups.WithLabelValues(status).Inc()
}
