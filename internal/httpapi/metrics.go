package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mailgen",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by route template and status",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mailgen",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds, including model generation",
			Buckets:   []float64{.005, .05, .25, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"path", "method", "status"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mailgen",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Requests currently being handled",
		},
	)

	backpressureTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mailgen",
			Subsystem: "http",
			Name:      "backpressure_total",
			Help:      "Requests rejected with 503 because the model was busy or not ready",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, backpressureTotal)
}

// MetricsMiddleware records request counts, latency and in-flight requests.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		// the route pattern is only known once chi has routed the request
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := routePatternOrPath(r)
			code := strconv.Itoa(status)
			httpRequestsTotal.WithLabelValues(path, r.Method, code).Inc()
			httpRequestDuration.WithLabelValues(path, r.Method, code).Observe(time.Since(start).Seconds())
		}()
		httpInflight.Inc()
		defer httpInflight.Dec()
		next.ServeHTTP(ww, r)
	})
}

// routePatternOrPath labels by route template, so /items/42 counts as /items/{id}.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// IncrementBackpressure is called when a request is turned away because the model is busy.
func IncrementBackpressure(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	backpressureTotal.WithLabelValues(reason).Inc()
}
