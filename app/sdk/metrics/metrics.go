// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	goroutines prometheus.Gauge
	requests   prometheus.Counter
	errors     prometheus.Counter
	panics     prometheus.Counter
	latency    *prometheus.HistogramVec
}

var m = metrics{
	goroutines: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agenda_goroutines",
		Help: "Number of goroutines at the time of the last request.",
	}),
	requests: promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenda_requests_total",
		Help: "Number of HTTP requests handled.",
	}),
	errors: promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenda_errors_total",
		Help: "Number of HTTP requests that ended in an error.",
	}),
	panics: promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenda_panics_total",
		Help: "Number of recovered panics.",
	}),
	latency: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agenda_request_duration_seconds",
		Help:    "Duration of HTTP requests by status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"code"}),
}

// AddGoroutines refreshes the goroutine metric.
func AddGoroutines(ctx context.Context) int64 {
	g := int64(runtime.NumGoroutine())
	m.goroutines.Set(float64(g))
	return g
}

// AddRequests increments the request metric by 1.
func AddRequests(ctx context.Context) {
	m.requests.Inc()
}

// AddErrors increments the errors metric by 1.
func AddErrors(ctx context.Context) {
	m.errors.Inc()
}

// AddPanics increments the panics metric by 1.
func AddPanics(ctx context.Context) {
	m.panics.Inc()
}

// ObserveLatency records how long a request took.
func ObserveLatency(ctx context.Context, code string, seconds float64) {
	m.latency.WithLabelValues(code).Observe(seconds)
}
