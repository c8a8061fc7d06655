package testing

import (
	"gopallet/runtime"
)

// Well-known demo accounts.
const (
	Alice   runtime.AccountID = "alice"
	Bob     runtime.AccountID = "bob"
	Charlie runtime.AccountID = "charlie"
)

// DemoGenesis returns the genesis balances of the demo chain.
func DemoGenesis() map[runtime.AccountID]runtime.Balance {
	return map[runtime.AccountID]runtime.Balance{
		Alice: 100,
	}
}

// DemoChain returns the two demo blocks: a pair of transfers, then a
// transfer followed by three claims.
func DemoChain() []runtime.Block {
	return []runtime.Block{
		{
			Header: runtime.Header{BlockNumber: 1},
			Extrinsics: []runtime.Extrinsic{
				transfer(Alice, Bob, 66),
				transfer(Alice, Charlie, 20),
			},
		},
		{
			Header: runtime.Header{BlockNumber: 2},
			Extrinsics: []runtime.Extrinsic{
				transfer(Alice, Bob, 2),
				claim(Alice, "This is alice's first claim."),
				claim(Bob, "This is bob's first claim."),
				claim(Bob, "This is bob's second claim."),
			},
		},
	}
}

// NewDemoRuntime returns a runtime with the demo genesis applied.
func NewDemoRuntime(opts ...runtime.Option) *runtime.Runtime {
	rt := runtime.New(opts...)
	rt.ApplyGenesis(DemoGenesis())
	return rt
}

func transfer(from, to runtime.AccountID, amount runtime.Balance) runtime.Extrinsic {
	return runtime.Extrinsic{
		Caller: from,
		Call:   runtime.BalancesCall{Call: runtime.Transfer{To: to, Amount: amount}},
	}
}

func claim(caller runtime.AccountID, content runtime.Content) runtime.Extrinsic {
	return runtime.Extrinsic{
		Caller: caller,
		Call:   runtime.ProofOfExistenceCall{Call: runtime.CreateClaim{Claim: content}},
	}
}
