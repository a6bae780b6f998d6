// Package metrics exposes Prometheus metrics for horizon searches and the
// HTTP API.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thurmanmarka/horizon"
)

// Recorder bundles the search and HTTP metrics. It implements
// horizon.Observer.
type Recorder struct {
	gatherer prometheus.Gatherer

	Searches          *prometheus.CounterVec
	SearchDurations   *prometheus.HistogramVec
	SearchEvaluations *prometheus.HistogramVec
	Events            *prometheus.CounterVec

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// New registers the metrics against reg, defaulting to the global
// Prometheus registry when nil. Registering twice on the same registry
// returns the existing collectors.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	searches, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "horizon_searches_total",
		Help: "Altitude-crossing searches, labeled by operation, body and result.",
	}, []string{"op", "body", "result"}), "horizon_searches_total")
	if err != nil {
		return nil, err
	}
	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "horizon_search_duration_seconds",
		Help:    "Search latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
	}, []string{"op", "body"}), "horizon_search_duration_seconds")
	if err != nil {
		return nil, err
	}
	evaluations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "horizon_search_evaluations",
		Help:    "Altitude evaluations per search.",
		Buckets: prometheus.ExponentialBuckets(16, 2, 10),
	}, []string{"op", "body"}), "horizon_search_evaluations")
	if err != nil {
		return nil, err
	}
	events, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "horizon_crossings_total",
		Help: "Crossings found, labeled by operation and body.",
	}, []string{"op", "body"}), "horizon_crossings_total")
	if err != nil {
		return nil, err
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "horizon_http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"route", "method", "code"}), "horizon_http_requests_total")
	if err != nil {
		return nil, err
	}
	httpDurations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "horizon_http_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"}), "horizon_http_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Recorder{
		gatherer:          gatherer,
		Searches:          searches,
		SearchDurations:   durations,
		SearchEvaluations: evaluations,
		Events:            events,
		HTTPRequests:      requests,
		HTTPDurations:     httpDurations,
	}, nil
}

// ObserveSearch records one search.
func (r *Recorder) ObserveSearch(op string, body horizon.Body, s horizon.SearchStats) {
	if r == nil {
		return
	}
	b := body.String()
	result := "ok"
	if s.Err != nil {
		result = "error"
	}
	r.Searches.WithLabelValues(op, b, result).Inc()
	if s.Err != nil {
		return
	}
	r.SearchDurations.WithLabelValues(op, b).Observe(s.Duration.Seconds())
	r.SearchEvaluations.WithLabelValues(op, b).Observe(float64(s.Evaluations))
	r.Events.WithLabelValues(op, b).Add(float64(s.Events))
}

// Handler exposes a ready-to-use /metrics handler.
func (r *Recorder) Handler() http.Handler {
	gatherer := r.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request. Requests
// are labeled by the ServeMux pattern that matched, not the raw path.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sw, req)

		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}
		r.HTTPRequests.WithLabelValues(route, req.Method, strconv.Itoa(sw.statusCode)).Inc()
		r.HTTPDurations.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
	})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
