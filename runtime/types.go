package runtime

import (
	"gopallet/pallets/balances"
	"gopallet/pallets/poe"
	"gopallet/pallets/system"
	"gopallet/support"
)

// Concrete types bound once for every module.
type (
	AccountID   = string
	Balance     = uint64
	BlockNumber = uint32
	Nonce       = uint32
	Content     = string
)

type (
	Header    = support.Header[BlockNumber]
	Extrinsic = support.Extrinsic[AccountID, RuntimeCall]
	Block     = support.Block[BlockNumber, AccountID, RuntimeCall]
)

// Module calls instantiated with the runtime's types.
type (
	Remark      = system.Remark[AccountID, BlockNumber, Nonce]
	Transfer    = balances.Transfer[AccountID, Balance]
	CreateClaim = poe.CreateClaim[AccountID, Content]
	RevokeClaim = poe.RevokeClaim[AccountID, Content]
)
