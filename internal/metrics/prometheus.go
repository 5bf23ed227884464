package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder records search, suggestion and provider metrics.
// It satisfies search.Recorder.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	searchTotal      *prometheus.CounterVec
	suggestionTotal  *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder with its own registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	// Register Go standard metrics and process/OS metrics.
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		searchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_search_total",
			Help: "Total number of weather search cycles by outcome.",
		}, []string{"outcome"}),
		suggestionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_suggestion_lookups_total",
			Help: "Total number of suggestion lookups by source.",
		}, []string{"source"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weather_provider_request_duration_seconds",
			Help:    "Duration of weather provider requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	registry.MustRegister(r.searchTotal, r.suggestionTotal, r.providerDuration)
	return r
}

func (r *PrometheusRecorder) ObserveSearch(outcome string) {
	r.searchTotal.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) ObserveSuggestions(source string) {
	r.suggestionTotal.WithLabelValues(source).Inc()
}

// ObserveProvider records one provider request duration.
func (r *PrometheusRecorder) ObserveProvider(operation string, d time.Duration) {
	r.providerDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

