// Package poe is the proof-of-existence module. Accounts claim content
// (the content itself or, better, its hash); each claim has one owner.
package poe

import (
	"maps"

	"github.com/pkg/errors"

	"gopallet/support"
)

var (
	ErrAlreadyClaimed = errors.New("content is already claimed")
	ErrClaimNotFound  = errors.New("claim does not exist")
	ErrNotOwner       = errors.New("caller does not own this claim")
)

// Pallet is the proof-of-existence module.
type Pallet[A support.AccountID, C support.Content] struct {
	claims map[C]A
}

// New creates a module with no claims.
func New[A support.AccountID, C support.Content]() *Pallet[A, C] {
	return &Pallet[A, C]{claims: make(map[C]A)}
}

// GetClaim returns the owner of content, if any.
func (p *Pallet[A, C]) GetClaim(content C) (A, bool) {
	owner, ok := p.claims[content]
	return owner, ok
}

// CreateClaim records caller as the owner of content.
func (p *Pallet[A, C]) CreateClaim(caller A, content C) error {
	if _, ok := p.claims[content]; ok {
		return ErrAlreadyClaimed
	}
	p.claims[content] = caller
	return nil
}

// RevokeClaim removes the claim on content. Existence is checked before
// ownership.
func (p *Pallet[A, C]) RevokeClaim(caller A, content C) error {
	owner, ok := p.claims[content]
	if !ok {
		return ErrClaimNotFound
	}
	if owner != caller {
		return ErrNotOwner
	}
	delete(p.claims, content)
	return nil
}

// Claims returns a copy of every claim.
func (p *Pallet[A, C]) Claims() map[C]A {
	return maps.Clone(p.claims)
}

// Dispatch applies a proof-of-existence call on behalf of caller.
func (p *Pallet[A, C]) Dispatch(caller A, call Call[A, C]) error {
	if support.IsNilCall(call) {
		return support.ErrNilCall
	}
	return call.apply(p, caller)
}
