// Package system tracks the current block number and how many extrinsics
// each account has submitted.
package system

import (
	"maps"

	"gopallet/support"
)

// Pallet is the system module. A is the account type, BN the block number
// type and N the nonce type bound by the runtime.
type Pallet[A support.AccountID, BN support.Unsigned, N support.Unsigned] struct {
	blockNumber BN
	nonce       map[A]N
}

// New creates a system module at block zero with no nonces.
func New[A support.AccountID, BN support.Unsigned, N support.Unsigned]() *Pallet[A, BN, N] {
	return &Pallet[A, BN, N]{
		blockNumber: support.Zero[BN](),
		nonce:       make(map[A]N),
	}
}

// BlockNumber returns the current block number.
func (p *Pallet[A, BN, N]) BlockNumber() BN {
	return p.blockNumber
}

// IncBlockNumber advances the block number by one.
func (p *Pallet[A, BN, N]) IncBlockNumber() {
	p.blockNumber += support.One[BN]()
}

// Nonce returns the nonce of who, or zero if who has never been seen.
func (p *Pallet[A, BN, N]) Nonce(who A) N {
	nonce, ok := p.nonce[who]
	if !ok {
		return support.Zero[N]()
	}
	return nonce
}

// IncNonce increments the nonce of who, creating the entry on first use.
func (p *Pallet[A, BN, N]) IncNonce(who A) {
	p.nonce[who] = p.Nonce(who) + support.One[N]()
}

// Nonces returns a copy of every materialized nonce.
func (p *Pallet[A, BN, N]) Nonces() map[A]N {
	return maps.Clone(p.nonce)
}

// Dispatch applies a system call on behalf of caller.
func (p *Pallet[A, BN, N]) Dispatch(caller A, call Call[A, BN, N]) error {
	if support.IsNilCall(call) {
		return support.ErrNilCall
	}
	return call.apply(p, caller)
}
