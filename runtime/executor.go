package runtime

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gopallet/support"
)

// ExtrinsicResult is the outcome of one extrinsic in an executed block.
type ExtrinsicResult struct {
	Index  int       `json:"index"`
	Caller AccountID `json:"caller"`
	Call   string    `json:"call"`
	Err    error     `json:"-"`
	Error  string    `json:"error,omitempty"`
}

// Receipt describes an executed block.
type Receipt struct {
	ID          uuid.UUID         `json:"id"`
	BlockNumber BlockNumber       `json:"block_number"`
	Results     []ExtrinsicResult `json:"results"`
}

// Failed returns the results whose dispatch returned an error.
func (rc *Receipt) Failed() []ExtrinsicResult {
	var failed []ExtrinsicResult
	for _, res := range rc.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// ExecuteBlock applies block to the runtime.
//
// The block number is advanced before the header is checked and is not
// rolled back when the check fails; in that case no extrinsic is applied and
// a BlockNumberMismatchError is returned. Otherwise every extrinsic is
// applied in order: the caller's nonce is incremented, then the call is
// dispatched. A failed dispatch is recorded in the receipt and logged, and
// execution moves on to the next extrinsic.
func (r *Runtime) ExecuteBlock(block Block) (*Receipt, error) {
	if r.phase == PhaseBlockInProgress {
		return nil, ErrBlockInProgress
	}
	previous := r.phase
	r.phase = PhaseBlockInProgress
	defer func() {
		// A rejected header or a panicking dispatch leaves the previous phase.
		if r.phase == PhaseBlockInProgress {
			r.phase = previous
		}
	}()

	r.system.IncBlockNumber()
	current := r.system.BlockNumber()
	log := r.log.WithFields(logrus.Fields{
		"component": "executor",
		"block":     current,
	})

	if block.Header.BlockNumber != current {
		err := BlockNumberMismatchError{Expected: current, Got: block.Header.BlockNumber}
		log.WithError(err).Warn("Block rejected")
		return nil, err
	}

	receipt := &Receipt{
		ID:          uuid.New(),
		BlockNumber: current,
		Results:     make([]ExtrinsicResult, 0, len(block.Extrinsics)),
	}

	for i, ext := range block.Extrinsics {
		r.system.IncNonce(ext.Caller)

		result := ExtrinsicResult{
			Index:  i,
			Caller: ext.Caller,
			Call:   support.CallName(ext.Call),
		}
		if err := r.Dispatch(ext.Caller, ext.Call); err != nil {
			result.Err = err
			result.Error = err.Error()
			log.WithFields(logrus.Fields{
				"extrinsic": i,
				"caller":    ext.Caller,
				"call":      result.Call,
			}).WithError(err).Warn("Extrinsic failed")
		}
		receipt.Results = append(receipt.Results, result)
	}

	r.phase = PhaseBlockCommitted
	log.WithFields(logrus.Fields{
		"receipt":    receipt.ID,
		"extrinsics": len(receipt.Results),
		"failed":     len(receipt.Failed()),
	}).Debug("Block executed")

	return receipt, nil
}
