package node

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gopallet/api"
	"gopallet/config"
	"gopallet/metrics"
	"gopallet/runtime"
	"gopallet/runtime/processing"
	"gopallet/runtime/store"
)

// Node wires the state store, block processor, metrics and HTTP API
type Node struct {
	// Core runtime state
	store *store.MemoryStateStore

	// Configuration
	config *config.Config
	log    logrus.FieldLogger

	// Block processing (logging, metrics)
	blockProcessor *processing.BlockProcessor

	// Components (each package handles its own concern)
	metrics   *metrics.Collector // nil when disabled
	apiServer *api.Server
}

// New creates a node and applies the configured genesis balances.
func New(cfg *config.Config, log logrus.FieldLogger) (*Node, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	stateStore := store.NewMemoryStateStore(runtime.WithLogger(log))
	if err := stateStore.ApplyGenesis(cfg.Genesis); err != nil {
		return nil, errors.Wrap(err, "failed to apply genesis")
	}

	blockProcessor := processing.NewBlockProcessor(stateStore, log)

	n := &Node{
		store:          stateStore,
		config:         cfg,
		log:            log.WithField("component", "node"),
		blockProcessor: blockProcessor,
	}

	opts := api.Options{
		Addr:       cfg.HTTP.Addr,
		BlockRate:  cfg.HTTP.BlockRate,
		BlockBurst: cfg.HTTP.BlockBurst,
		Logger:     log,
	}
	if cfg.Metrics.Enabled {
		n.metrics = metrics.NewCollector(cfg.Metrics.Namespace)
		blockProcessor.SetMetrics(n.metrics)
		opts.Metrics = n.metrics.Handler()
		opts.MetricsPath = cfg.Metrics.Path
	}
	n.apiServer = api.NewServer(stateStore, blockProcessor, opts)

	return n, nil
}

// Run serves the HTTP API until ctx is cancelled.
func (n *Node) Run(ctx context.Context) error {
	n.log.WithFields(logrus.Fields{
		"addr":     n.config.HTTP.Addr,
		"accounts": len(n.config.Genesis),
		"metrics":  n.metrics != nil,
	}).Info("Node starting")
	return n.apiServer.Start(ctx)
}

// Serve is Run on an existing listener.
func (n *Node) Serve(ctx context.Context, ln net.Listener) error {
	n.log.WithField("addr", ln.Addr().String()).Info("Node starting")
	return n.apiServer.Serve(ctx, ln)
}

func (n *Node) Store() store.StateStore {
	return n.store
}

func (n *Node) Processor() *processing.BlockProcessor {
	return n.blockProcessor
}

// Metrics returns the collector, or nil when metrics are disabled.
func (n *Node) Metrics() *metrics.Collector {
	return n.metrics
}
