// Package balances tracks the balance of every account and moves funds
// between accounts with overflow and underflow checks.
package balances

import (
	"maps"

	"github.com/pkg/errors"

	"gopallet/support"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOverflow          = errors.New("balance overflow")
)

// Pallet is the balances module.
type Pallet[A support.AccountID, B support.Unsigned] struct {
	balances map[A]B
}

// New creates an empty balances module.
func New[A support.AccountID, B support.Unsigned]() *Pallet[A, B] {
	return &Pallet[A, B]{balances: make(map[A]B)}
}

// SetBalance overwrites the balance of who. This is an administrative
// operation and is not reachable through Dispatch.
func (p *Pallet[A, B]) SetBalance(who A, amount B) {
	p.balances[who] = amount
}

// Balance returns the balance of who, or zero if who has no entry.
func (p *Pallet[A, B]) Balance(who A) B {
	balance, ok := p.balances[who]
	if !ok {
		return support.Zero[B]()
	}
	return balance
}

// Transfer moves amount from caller to to. Both new balances are computed
// before either is written, so a failed transfer leaves state untouched.
func (p *Pallet[A, B]) Transfer(caller, to A, amount B) error {
	newCallerBalance, ok := support.CheckedSub(p.Balance(caller), amount)
	if !ok {
		return ErrInsufficientFunds
	}

	toBalance := p.Balance(to)
	if to == caller {
		toBalance = newCallerBalance
	}
	newToBalance, ok := support.CheckedAdd(toBalance, amount)
	if !ok {
		return ErrOverflow
	}

	p.balances[caller] = newCallerBalance
	p.balances[to] = newToBalance
	return nil
}

// Balances returns a copy of every materialized balance.
func (p *Pallet[A, B]) Balances() map[A]B {
	return maps.Clone(p.balances)
}

// Dispatch applies a balances call on behalf of caller.
func (p *Pallet[A, B]) Dispatch(caller A, call Call[A, B]) error {
	if support.IsNilCall(call) {
		return support.ErrNilCall
	}
	return call.apply(p, caller)
}
