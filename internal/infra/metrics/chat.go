package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		chatExchanges,
		historyFetches,
	)
}

var (
	chatExchanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_exchanges_total",
			Help: "Chat exchanges by result (ok/unauthenticated/empty_message/provider_error/storage_error).",
		},
		[]string{"result"},
	)

	historyFetches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "history_fetches_total",
			Help: "Successful history retrievals.",
		},
	)
)

func IncExchange(result string) {
	chatExchanges.WithLabelValues(norm(result)).Inc()
}

func IncHistoryFetch() {
	historyFetches.Inc()
}
