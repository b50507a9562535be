package blocklist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blocklist_refresh_total",
		Help: "Total number of blocklist refresh runs",
	})

	sourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blocklist_source_failures_total",
		Help: "Refresh runs in which a source failed and kept its previous snapshot",
	}, []string{"source"})

	domainsGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "blocklist_domains",
		Help: "Number of cached domains per source",
	}, []string{"source"})
)
