package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder encapsulates Prometheus instrumentation for generation calls.
type Recorder struct {
	registry         *prometheus.Registry
	handler          http.Handler
	generationTotal  *prometheus.CounterVec
	generationTime   prometheus.Histogram
	schedulesFound   prometheus.Histogram
	limitTruncations prometheus.Counter
}

// NewRecorder registers the generation collectors on a fresh registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	generationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generations_total",
		Help: "Total number of timetable generation calls by outcome",
	}, []string{"outcome"})

	generationTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Duration of timetable generation calls in seconds",
		Buckets: prometheus.DefBuckets,
	})

	schedulesFound := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_schedules_found",
		Help:    "Number of schedules returned per generation call",
		Buckets: prometheus.ExponentialBuckets(1, 4, 6),
	})

	limitTruncations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_result_limit_truncations_total",
		Help: "Generation calls truncated by the result limit",
	})

	registry.MustRegister(generationTotal, generationTime, schedulesFound, limitTruncations)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &Recorder{
		registry:         registry,
		handler:          handler,
		generationTotal:  generationTotal,
		generationTime:   generationTime,
		schedulesFound:   schedulesFound,
		limitTruncations: limitTruncations,
	}
}

// Handler exposes the Prometheus HTTP handler for the embedding layer.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveGeneration records a completed generation call.
func (r *Recorder) ObserveGeneration(outcome string, found int, limitReached bool, duration time.Duration) {
	if r == nil {
		return
	}
	r.generationTotal.WithLabelValues(outcome).Inc()
	r.generationTime.Observe(duration.Seconds())
	r.schedulesFound.Observe(float64(found))
	if limitReached {
		r.limitTruncations.Inc()
	}
}
