package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "outbound_fetch_attempts_total",
		Help: "Total number of outbound request attempts, including retries",
	})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "outbound_fetch_retries_total",
		Help: "Total number of retries after a transient failure",
	})

	exhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "outbound_fetch_retry_exhausted_total",
		Help: "Total number of requests that failed after exhausting retries",
	})
)
