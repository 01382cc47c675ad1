package backend

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tribute_upstream_calls_total",
		Help: "Calls made to the upstream tribute API.",
	}, []string{"method", "endpoint", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tribute_upstream_call_duration_seconds",
		Help:    "Latency of calls to the upstream tribute API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})
)

func observeCall(method, endpoint string, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			outcome = strconv.Itoa(apiErr.StatusCode)
		}
	}
	upstreamCalls.WithLabelValues(method, endpoint, outcome).Inc()
	upstreamDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}
