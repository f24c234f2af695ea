package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signals_hub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "signals_hub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	tokenRedemptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signals_hub",
			Subsystem: "tokens",
			Name:      "redemptions_total",
			Help:      "Total number of single-use token redemption attempts.",
		},
		[]string{"purpose", "outcome"},
	)

	tokensPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "signals_hub",
			Subsystem: "tokens",
			Name:      "purged_total",
			Help:      "Total number of expired token rows removed by the purge job.",
		},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, tokenRedemptions, tokensPurged)
}

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method, path string, status int, latency time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(latency.Seconds())
}

// ObserveRedemption records one token redemption attempt and its outcome
// (redeemed, not_found, expired, error).
func ObserveRedemption(purpose, outcome string) {
	tokenRedemptions.WithLabelValues(purpose, outcome).Inc()
}

// AddPurged records expired token rows removed by the purge job.
func AddPurged(n int64) {
	tokensPurged.Add(float64(n))
}

// Handler returns the scrape endpoint handler backed by Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
