package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(httpRequestDuration)
}

var httpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "Inbound HTTP request duration in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 15000},
	},
	[]string{"route", "method", "status"},
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(route, method string, status int, ms float64) {
	httpRequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(ms)
}
