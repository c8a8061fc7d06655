package runtime

import (
	"gopallet/pallets/balances"
	"gopallet/pallets/poe"
	"gopallet/pallets/system"
	"gopallet/support"
)

// RuntimeCall is the closed union of calls exposed to block producers: one
// variant per module, wrapping that module's own call.
type RuntimeCall interface {
	support.Call
	dispatch(r *Runtime, caller AccountID) error
}

// SystemCall selects the system module.
type SystemCall struct {
	Call system.Call[AccountID, BlockNumber, Nonce]
}

func (c SystemCall) Name() string { return support.CallName(c.Call) }

func (c SystemCall) dispatch(r *Runtime, caller AccountID) error {
	return r.system.Dispatch(caller, c.Call)
}

// BalancesCall selects the balances module.
type BalancesCall struct {
	Call balances.Call[AccountID, Balance]
}

func (c BalancesCall) Name() string { return support.CallName(c.Call) }

func (c BalancesCall) dispatch(r *Runtime, caller AccountID) error {
	return r.balances.Dispatch(caller, c.Call)
}

// ProofOfExistenceCall selects the proof-of-existence module.
type ProofOfExistenceCall struct {
	Call poe.Call[AccountID, Content]
}

func (c ProofOfExistenceCall) Name() string { return support.CallName(c.Call) }

func (c ProofOfExistenceCall) dispatch(r *Runtime, caller AccountID) error {
	return r.proofOfExistence.Dispatch(caller, c.Call)
}
