package store

import (
	"gopallet/runtime"
)

// StateStore holds the runtime state. Implementations serialize block
// execution: a block runs to completion before the next one is accepted,
// and reads never observe a block half-applied.
type StateStore interface {

	// Update
	ExecuteBlock(block runtime.Block) (*runtime.Receipt, error)
	SetBalance(who runtime.AccountID, amount runtime.Balance) error
	ApplyGenesis(balances map[runtime.AccountID]runtime.Balance) error

	// Getters
	BlockNumber() (runtime.BlockNumber, error)
	BalanceOf(who runtime.AccountID) (runtime.Balance, error)
	NonceOf(who runtime.AccountID) (runtime.Nonce, error)
	GetClaim(content runtime.Content) (runtime.AccountID, bool, error)
	Snapshot() (runtime.Snapshot, error)
}
