// Package metrics provides block execution metrics backed by Prometheus
// collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector records block and extrinsic outcomes.
type Collector struct {
	registry *prometheus.Registry

	blocksExecuted  prometheus.Counter
	blocksRejected  *prometheus.CounterVec
	blockNumber     prometheus.Gauge
	extrinsicsTotal *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "gopallet"
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	c.blocksExecuted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "executor",
		Name:      "blocks_executed_total",
		Help:      "Blocks whose extrinsics were applied",
	})

	c.blocksRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "blocks_rejected_total",
			Help:      "Blocks aborted before any extrinsic ran",
		},
		[]string{"reason"},
	)

	c.blockNumber = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "system",
		Name:      "block_number",
		Help:      "Current block number",
	})

	c.extrinsicsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "extrinsics_total",
			Help:      "Extrinsics applied, by call and outcome",
		},
		[]string{"call", "outcome"},
	)

	c.registry.MustRegister(
		c.blocksExecuted,
		c.blocksRejected,
		c.blockNumber,
		c.extrinsicsTotal,
	)

	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordBlockExecuted counts an applied block.
func (c *Collector) RecordBlockExecuted() {
	c.blocksExecuted.Inc()
}

// RecordBlockRejected counts an aborted block.
func (c *Collector) RecordBlockRejected(reason string) {
	c.blocksRejected.WithLabelValues(reason).Inc()
}

// SetBlockNumber updates the block number gauge.
func (c *Collector) SetBlockNumber(n uint64) {
	c.blockNumber.Set(float64(n))
}

// RecordExtrinsic counts one dispatched extrinsic.
func (c *Collector) RecordExtrinsic(call string, failed bool) {
	outcome := OutcomeSuccess
	if failed {
		outcome = OutcomeFailure
	}
	c.extrinsicsTotal.WithLabelValues(call, outcome).Inc()
}
