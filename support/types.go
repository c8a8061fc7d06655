package support

import "cmp"

// AccountID is the identifier every module shares with the host. It must be
// totally ordered so it can key state maps and be printed deterministically.
type AccountID interface {
	cmp.Ordered
}

// Content is the claim key type used by the proof-of-existence module.
type Content interface {
	cmp.Ordered
}

// Header carries the intended block number. On a real chain it would also
// hold the parent hash and state/extrinsic roots.
type Header[BN Unsigned] struct {
	BlockNumber BN `json:"block_number"`
}

// Extrinsic is an external message: who is calling, and which call they make.
type Extrinsic[A AccountID, C any] struct {
	Caller A `json:"caller"`
	Call   C `json:"call"`
}

// Block is an ordered batch of extrinsics plus its header. Extrinsics are
// applied strictly in slice order.
type Block[BN Unsigned, A AccountID, C any] struct {
	Header     Header[BN]        `json:"header"`
	Extrinsics []Extrinsic[A, C] `json:"extrinsics"`
}
