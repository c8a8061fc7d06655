package mocks

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"gopallet/runtime"
)

// GenerateAccounts returns count distinct account IDs.
func GenerateAccounts(count int) []runtime.AccountID {
	accounts := make([]runtime.AccountID, count)
	for i := range accounts {
		accounts[i] = fmt.Sprintf("account-%d", i)
	}
	return accounts
}

// GenerateGenesis gives every account the same starting balance.
func GenerateGenesis(accounts []runtime.AccountID, amount runtime.Balance) map[runtime.AccountID]runtime.Balance {
	genesis := make(map[runtime.AccountID]runtime.Balance, len(accounts))
	for _, who := range accounts {
		genesis[who] = amount
	}
	return genesis
}

// GenerateTransferBlock builds a block of count random transfers between
// accounts. Amounts are drawn from [0, maxAmount], so some transfers are
// expected to fail with insufficient funds.
func GenerateTransferBlock(rng *rand.Rand, number runtime.BlockNumber, accounts []runtime.AccountID, count int, maxAmount runtime.Balance) runtime.Block {
	block := runtime.Block{
		Header:     runtime.Header{BlockNumber: number},
		Extrinsics: make([]runtime.Extrinsic, 0, count),
	}
	for i := 0; i < count; i++ {
		block.Extrinsics = append(block.Extrinsics, runtime.Extrinsic{
			Caller: pick(rng, accounts),
			Call: runtime.BalancesCall{Call: runtime.Transfer{
				To:     pick(rng, accounts),
				Amount: randomAmount(rng, maxAmount),
			}},
		})
	}
	return block
}

// GenerateMixedBlock builds a block mixing transfers, claims, revocations and
// remarks over the given accounts and contents.
func GenerateMixedBlock(rng *rand.Rand, number runtime.BlockNumber, accounts []runtime.AccountID, contents []runtime.Content, count int, maxAmount runtime.Balance) runtime.Block {
	block := runtime.Block{
		Header:     runtime.Header{BlockNumber: number},
		Extrinsics: make([]runtime.Extrinsic, 0, count),
	}
	for i := 0; i < count; i++ {
		var call runtime.RuntimeCall
		switch rng.Intn(4) {
		case 0:
			call = runtime.BalancesCall{Call: runtime.Transfer{
				To:     pick(rng, accounts),
				Amount: randomAmount(rng, maxAmount),
			}}
		case 1:
			call = runtime.ProofOfExistenceCall{Call: runtime.CreateClaim{Claim: pick(rng, contents)}}
		case 2:
			call = runtime.ProofOfExistenceCall{Call: runtime.RevokeClaim{Claim: pick(rng, contents)}}
		default:
			call = runtime.SystemCall{Call: runtime.Remark{Data: []byte(fmt.Sprintf("remark-%d", i))}}
		}
		block.Extrinsics = append(block.Extrinsics, runtime.Extrinsic{
			Caller: pick(rng, accounts),
			Call:   call,
		})
	}
	return block
}

// GenerateInvalidBlock returns an empty block whose number the runtime will
// reject: it skips one block ahead of the next expected number.
func GenerateInvalidBlock(rt *runtime.Runtime) runtime.Block {
	return runtime.Block{
		Header: runtime.Header{BlockNumber: rt.BlockNumber() + 2},
	}
}

// ApplyBlocks executes blocks in order and stops at the first block-level
// error.
func ApplyBlocks(rt *runtime.Runtime, blocks []runtime.Block) ([]*runtime.Receipt, error) {
	receipts := make([]*runtime.Receipt, 0, len(blocks))
	for _, block := range blocks {
		receipt, err := rt.ExecuteBlock(block)
		if err != nil {
			return receipts, errors.Wrapf(err, "block %d", block.Header.BlockNumber)
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

// CountCalls returns how many extrinsics each account submits in blocks.
func CountCalls(blocks []runtime.Block) map[runtime.AccountID]runtime.Nonce {
	counts := make(map[runtime.AccountID]runtime.Nonce)
	for _, block := range blocks {
		for _, ext := range block.Extrinsics {
			counts[ext.Caller]++
		}
	}
	return counts
}

// randomAmount draws uniformly enough from [0, maxAmount] for test traffic.
func randomAmount(rng *rand.Rand, maxAmount runtime.Balance) runtime.Balance {
	if maxAmount == math.MaxUint64 {
		return rng.Uint64()
	}
	return rng.Uint64() % (maxAmount + 1)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
