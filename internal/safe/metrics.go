package safe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	ProposalsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cowtrader_safe_proposals_created_total",
		Help: "Total number of Safe transaction proposals created",
	})
)
