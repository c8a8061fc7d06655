package processing

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gopallet/metrics"
	"gopallet/runtime"
	"gopallet/runtime/store"
)

// BlockProcessor feeds blocks to the state store and reports the outcome
type BlockProcessor struct {
	store   store.StateStore
	metrics *metrics.Collector // Optional
	log     logrus.FieldLogger
}

// NewBlockProcessor creates a new block processor
func NewBlockProcessor(stateStore store.StateStore, log logrus.FieldLogger) *BlockProcessor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BlockProcessor{
		store: stateStore,
		log:   log.WithField("component", "processor"),
	}
}

// SetMetrics sets the metrics collector (optional)
func (bp *BlockProcessor) SetMetrics(collector *metrics.Collector) {
	bp.metrics = collector
}

// ProcessBlock executes a block against the store. Failed extrinsics are
// part of a successful result; only a block-level error is returned.
func (bp *BlockProcessor) ProcessBlock(block runtime.Block) (*runtime.Receipt, error) {
	receipt, err := bp.store.ExecuteBlock(block)
	bp.recordBlockNumber()

	if err != nil {
		if errors.Is(err, runtime.ErrBlockNumberMismatch) {
			bp.log.WithError(err).Warnf("Block %d rejected", block.Header.BlockNumber)
			if bp.metrics != nil {
				bp.metrics.RecordBlockRejected("block_number_mismatch")
			}
			return nil, err
		}
		if bp.metrics != nil {
			bp.metrics.RecordBlockRejected("other")
		}
		return nil, errors.Wrap(err, "failed to execute block")
	}

	failed := 0
	for _, res := range receipt.Results {
		if res.Err != nil {
			failed++
			bp.log.WithFields(logrus.Fields{
				"block":     receipt.BlockNumber,
				"extrinsic": res.Index,
				"caller":    res.Caller,
				"call":      res.Call,
			}).Debugf("Extrinsic failed: %v", res.Err)
		}
		if bp.metrics != nil {
			bp.metrics.RecordExtrinsic(res.Call, res.Err != nil)
		}
	}
	if bp.metrics != nil {
		bp.metrics.RecordBlockExecuted()
	}

	bp.log.WithFields(logrus.Fields{
		"receipt":    receipt.ID,
		"extrinsics": len(receipt.Results),
		"failed":     failed,
	}).Infof("Block %d executed", receipt.BlockNumber)

	return receipt, nil
}

// ProcessBlocks processes blocks in order and stops at the first block-level
// error.
func (bp *BlockProcessor) ProcessBlocks(blocks []runtime.Block) ([]*runtime.Receipt, error) {
	receipts := make([]*runtime.Receipt, 0, len(blocks))
	for i, block := range blocks {
		receipt, err := bp.ProcessBlock(block)
		if err != nil {
			return receipts, errors.Wrapf(err, "block %d of %d", i+1, len(blocks))
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

func (bp *BlockProcessor) recordBlockNumber() {
	if bp.metrics == nil {
		return
	}
	number, err := bp.store.BlockNumber()
	if err != nil {
		bp.log.WithError(err).Warn("Failed to read block number for metrics")
		return
	}
	bp.metrics.SetBlockNumber(uint64(number))
}
