package system

import "gopallet/support"

// Call is the closed set of calls the system module accepts.
type Call[A support.AccountID, BN support.Unsigned, N support.Unsigned] interface {
	support.Call
	apply(p *Pallet[A, BN, N], caller A) error
}

// Remark records nothing; its only effect is the caller's nonce bump done by
// the block executor.
type Remark[A support.AccountID, BN support.Unsigned, N support.Unsigned] struct {
	Data []byte `json:"data"`
}

func (Remark[A, BN, N]) Name() string { return "system.remark" }

func (Remark[A, BN, N]) apply(*Pallet[A, BN, N], A) error { return nil }
