// Package metrics provides Prometheus metrics for the folio server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	upstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_upstream_calls_total",
			Help: "Calls to the generative-language API by outcome",
		},
		[]string{"outcome"},
	)

	upstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_upstream_duration_seconds",
			Help:    "Generative-language API call duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	upstreamTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_upstream_tokens_total",
			Help: "Tokens reported by the generative-language API",
		},
		[]string{"direction"},
	)

	terminalSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_terminal_sessions_active",
			Help: "Number of open web terminal sessions",
		},
	)

	terminalSessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_terminal_sessions_expired_total",
			Help: "Web terminal sessions closed for inactivity",
		},
	)

	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_commands_total",
			Help: "Terminal commands processed by command name",
		},
		[]string{"command"},
	)

	profileReloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_profile_reloads_total",
			Help: "Profile file reloads picked up by the server",
		},
	)
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUpstreamCall records a call to the generative-language API.
// status is 0 when the call failed before a response arrived.
func RecordUpstreamCall(status int, duration time.Duration) {
	upstreamCallsTotal.WithLabelValues(outcome(status)).Inc()
	upstreamDuration.Observe(duration.Seconds())
}

func outcome(status int) string {
	switch {
	case status == 0:
		return "transport_error"
	case status < 300:
		return "2xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// RecordTokens adds the token counts from a response's usage metadata.
func RecordTokens(prompt, candidates int64) {
	if prompt > 0 {
		upstreamTokensTotal.WithLabelValues("prompt").Add(float64(prompt))
	}
	if candidates > 0 {
		upstreamTokensTotal.WithLabelValues("candidates").Add(float64(candidates))
	}
}

// SessionOpened increments the active web terminal sessions gauge.
func SessionOpened() { terminalSessionsActive.Inc() }

// SessionClosed decrements the gauge; expired marks an idle timeout.
func SessionClosed(expired bool) {
	terminalSessionsActive.Dec()
	if expired {
		terminalSessionsExpired.Inc()
	}
}

// RecordCommand counts one processed terminal command.
func RecordCommand(name string) {
	if name == "" {
		return
	}
	commandsTotal.WithLabelValues(name).Inc()
}

// RecordProfileReload counts a profile hot reload.
func RecordProfileReload() { profileReloadsTotal.Inc() }

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns HTTP middleware that records request metrics.
// Requests are labeled by the matched ServeMux pattern to keep session ids
// out of the label set.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		RecordHTTPRequest(r.Method, route, rw.statusCode, time.Since(start))
	})
}
