package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NodeHeight tracks the latest reported block height per node
	NodeHeight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sentinel_node_height",
			Help: "Latest block height reported by the node",
		},
		[]string{"node"},
	)

	// BlockLag tracks how far the local node is behind the remote reference
	BlockLag = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_block_lag",
			Help: "Blocks the local node is behind the remote reference",
		},
	)

	// RPCCallsTotal tracks height queries per node
	RPCCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_rpc_calls_total",
			Help: "Total number of block height queries",
		},
		[]string{"node"},
	)

	// RPCErrorsTotal tracks failed height queries per node and failure reason
	RPCErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_rpc_errors_total",
			Help: "Total number of failed block height queries",
		},
		[]string{"node", "reason"},
	)

	// RPCLatency tracks height query latency per node
	RPCLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_rpc_latency_seconds",
			Help:    "Block height query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"node"},
	)

	// CyclesTotal tracks polling cycles by resulting verdict
	CyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_cycles_total",
			Help: "Total number of polling cycles by verdict",
		},
		[]string{"verdict"},
	)

	// NotificationsTotal tracks outbound webhook deliveries by outcome
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_notifications_total",
			Help: "Total number of webhook notification attempts",
		},
		[]string{"outcome"},
	)

	// CycleDuration tracks how long one collect-evaluate-notify cycle takes
	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_cycle_duration_seconds",
			Help:    "Duration of one polling cycle in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
