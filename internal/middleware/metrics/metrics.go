// Package metrics instruments the HTTP surfaces with Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kaiwa",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kaiwa",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			// Multipart uploads buffer whole files before responding, so the
			// tail runs longer than a typical JSON API.
			Buckets: []float64{.005, .025, .1, .25, .5, 1, 2.5, 5, 15, 30},
		},
		[]string{"method", "route"},
	)

	requestSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "kaiwa",
			Name:      "http_request_size_bytes",
			Help:      "Declared request body size",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 9), // 1KiB .. 64MiB
		},
	)

	inFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "kaiwa",
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being handled",
		},
	)
)

// Middleware records request counts, latency and declared body size.
// Requests are labeled with the chi route pattern rather than the raw path
// so conversation and attachment ids stay out of the label set.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inFlight.Inc()
		defer inFlight.Dec()

		if r.ContentLength > 0 {
			requestSize.Observe(float64(r.ContentLength))
		}

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
