// Package runtime composes the system, balances and proof-of-existence
// modules into one state machine and drives it one block at a time.
//
// The Runtime is the only place modules are wired together: it binds the
// concrete account, balance, block number, nonce and content types, owns one
// instance of each module and routes every RuntimeCall to the module that
// handles it. Modules never reference each other or the Runtime.
//
// A Runtime is not safe for concurrent use. Hosts that share one between
// goroutines must hold an exclusive lock for every ExecuteBlock call (see
// runtime/store).
package runtime

import (
	"io"

	"github.com/sirupsen/logrus"

	"gopallet/pallets/balances"
	"gopallet/pallets/poe"
	"gopallet/pallets/system"
	"gopallet/support"
)

// Runtime is the aggregate root holding all module state.
type Runtime struct {
	system           *system.Pallet[AccountID, BlockNumber, Nonce]
	balances         *balances.Pallet[AccountID, Balance]
	proofOfExistence *poe.Pallet[AccountID, Content]

	phase Phase
	log   logrus.FieldLogger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used to report failed extrinsics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Runtime) {
		if log != nil {
			r.log = log
		}
	}
}

var _ support.Dispatcher[AccountID, RuntimeCall] = (*Runtime)(nil)

// New creates a Runtime with every module in its empty state.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		system:           system.New[AccountID, BlockNumber, Nonce](),
		balances:         balances.New[AccountID, Balance](),
		proofOfExistence: poe.New[AccountID, Content](),
		phase:            PhaseNotStarted,
		log:              discardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Dispatch routes call to the module it belongs to. The module's error is
// returned unchanged.
func (r *Runtime) Dispatch(caller AccountID, call RuntimeCall) error {
	if support.IsNilCall(call) {
		return support.ErrNilCall
	}
	return call.dispatch(r, caller)
}

// SetBalance is the administrative balance overwrite used at genesis.
func (r *Runtime) SetBalance(who AccountID, amount Balance) {
	r.balances.SetBalance(who, amount)
}

// BlockNumber returns the number of blocks begun so far.
func (r *Runtime) BlockNumber() BlockNumber {
	return r.system.BlockNumber()
}

// NonceOf returns how many extrinsics who has submitted.
func (r *Runtime) NonceOf(who AccountID) Nonce {
	return r.system.Nonce(who)
}

// BalanceOf returns the balance of who, zero if unknown.
func (r *Runtime) BalanceOf(who AccountID) Balance {
	return r.balances.Balance(who)
}

// GetClaim returns the owner of content, if claimed.
func (r *Runtime) GetClaim(content Content) (AccountID, bool) {
	return r.proofOfExistence.GetClaim(content)
}

// Phase reports where the runtime is in the block lifecycle.
func (r *Runtime) Phase() Phase {
	return r.phase
}
