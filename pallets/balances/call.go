package balances

import "gopallet/support"

// Call is the closed set of calls the balances module accepts.
type Call[A support.AccountID, B support.Unsigned] interface {
	support.Call
	apply(p *Pallet[A, B], caller A) error
}

// Transfer moves Amount from the caller to To.
type Transfer[A support.AccountID, B support.Unsigned] struct {
	To     A `json:"to"`
	Amount B `json:"amount"`
}

func (Transfer[A, B]) Name() string { return "balances.transfer" }

func (c Transfer[A, B]) apply(p *Pallet[A, B], caller A) error {
	return p.Transfer(caller, c.To, c.Amount)
}
