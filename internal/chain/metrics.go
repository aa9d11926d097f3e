package chain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	TransactionsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cowtrader_transactions_sent_total",
		Help: "Total number of transactions broadcast",
	})

	TransactionsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cowtrader_transactions_confirmed_total",
		Help: "Total number of transactions confirmed at the requested depth",
	})
)
