// Package metrics exposes connection lifecycle counters for scraping.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cluster_provider"

var (
	// ConnectAttempts counts connection attempts per cluster, including
	// re-selections of the current cluster.
	ConnectAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connect_attempts_total",
		Help:      "Number of connection attempts started, by cluster.",
	}, []string{"cluster"})

	// ConnectResults counts applied (non-stale) connection results.
	ConnectResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connect_results_total",
		Help:      "Number of connection results applied, by cluster and status.",
	}, []string{"cluster", "status"})

	// StaleResultsDropped counts results discarded because a newer attempt
	// superseded theirs.
	StaleResultsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_results_dropped_total",
		Help:      "Number of connection results dropped as stale.",
	})

	// ConnectionStatus is the current status as a one-hot gauge.
	ConnectionStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connection_status",
		Help:      "Current connection status (1 for the active status, 0 otherwise).",
	}, []string{"status"})
)

// SetStatus flips the one-hot status gauge.
func SetStatus(current string, all []string) {
	for _, s := range all {
		v := 0.0
		if s == current {
			v = 1.0
		}
		ConnectionStatus.WithLabelValues(s).Set(v)
	}
}
