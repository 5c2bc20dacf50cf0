package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(completionLatency)
}

var completionLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "completion_latency_ms",
		Help:    "Provider completion call latency distribution in milliseconds.",
		Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 15000},
	},
	[]string{"success"},
)

// ObserveCompletion records one provider call.
func ObserveCompletion(d time.Duration, success bool) {
	completionLatency.WithLabelValues(strconv.FormatBool(success)).
		Observe(float64(d.Milliseconds()))
}
