package poe

import "gopallet/support"

// Call is the closed set of calls the proof-of-existence module accepts.
type Call[A support.AccountID, C support.Content] interface {
	support.Call
	apply(p *Pallet[A, C], caller A) error
}

// CreateClaim claims Claim for the caller.
type CreateClaim[A support.AccountID, C support.Content] struct {
	Claim C `json:"claim"`
}

func (CreateClaim[A, C]) Name() string { return "poe.create_claim" }

func (c CreateClaim[A, C]) apply(p *Pallet[A, C], caller A) error {
	return p.CreateClaim(caller, c.Claim)
}

// RevokeClaim releases a claim the caller owns.
type RevokeClaim[A support.AccountID, C support.Content] struct {
	Claim C `json:"claim"`
}

func (RevokeClaim[A, C]) Name() string { return "poe.revoke_claim" }

func (c RevokeClaim[A, C]) apply(p *Pallet[A, C], caller A) error {
	return p.RevokeClaim(caller, c.Claim)
}
