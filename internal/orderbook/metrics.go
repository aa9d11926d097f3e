package orderbook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	QuotesRequestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cowtrader_quotes_requested_total",
		Help: "Total number of quotes fetched from the order book",
	})

	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cowtrader_orders_submitted_total",
		Help: "Total number of orders posted to the order book",
	})
)
