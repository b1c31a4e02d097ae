package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "The total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portfolio",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latencies",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func observeRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
