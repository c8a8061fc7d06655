package runtime_test

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopallet/mocks"
	"gopallet/pallets/poe"
	"gopallet/runtime"
)

func totalBalance(rt *runtime.Runtime) uint64 {
	var sum uint64
	for _, entry := range rt.Snapshot().Balances {
		sum += entry.Balance
	}
	return sum
}

func TestTransfersConserveTotalBalance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	accounts := mocks.GenerateAccounts(6)

	rt := runtime.New()
	rt.ApplyGenesis(mocks.GenerateGenesis(accounts, 1_000))
	want := totalBalance(rt)
	require.Equal(t, uint64(6_000), want)

	for n := runtime.BlockNumber(1); n <= 20; n++ {
		block := mocks.GenerateTransferBlock(rng, n, accounts, 25, 700)
		receipt, err := rt.ExecuteBlock(block)
		require.NoError(t, err)
		require.Len(t, receipt.Results, 25)
		require.Equal(t, want, totalBalance(rt), "total changed in block %d", n)
	}
}

func TestNonceCountsEveryExtrinsic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	accounts := mocks.GenerateAccounts(5)
	contents := []runtime.Content{"a", "b", "c"}

	rt := runtime.New()
	rt.ApplyGenesis(mocks.GenerateGenesis(accounts, 50))

	var blocks []runtime.Block
	for n := runtime.BlockNumber(1); n <= 10; n++ {
		blocks = append(blocks, mocks.GenerateMixedBlock(rng, n, accounts, contents, 30, 100))
	}

	receipts, err := mocks.ApplyBlocks(rt, blocks)
	require.NoError(t, err)
	require.Len(t, receipts, len(blocks))

	failures := 0
	for _, receipt := range receipts {
		failures += len(receipt.Failed())
	}
	require.Greater(t, failures, 0, "generated blocks should include failing extrinsics")

	for who, count := range mocks.CountCalls(blocks) {
		assert.Equal(t, count, rt.NonceOf(who), "nonce of %s", who)
	}
	assert.Equal(t, runtime.BlockNumber(10), rt.BlockNumber())
}

func TestClaimHasSingleOwner(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	accounts := mocks.GenerateAccounts(4)
	contents := []runtime.Content{"doc-1", "doc-2"}

	rt := runtime.New()
	for n := runtime.BlockNumber(1); n <= 15; n++ {
		block := mocks.GenerateMixedBlock(rng, n, accounts, contents, 20, 10)
		before := rt.Snapshot().Claims
		owners := make(map[runtime.Content]runtime.AccountID)
		for _, c := range before {
			owners[c.Content] = c.Owner
		}

		receipt, err := rt.ExecuteBlock(block)
		require.NoError(t, err)

		// Replay the block's claim calls against the pre-block owners.
		for i, ext := range block.Extrinsics {
			call, ok := ext.Call.(runtime.ProofOfExistenceCall)
			if !ok {
				continue
			}
			got := receipt.Results[i].Err
			switch c := call.Call.(type) {
			case runtime.CreateClaim:
				if _, taken := owners[c.Claim]; taken {
					assert.True(t, errors.Is(got, poe.ErrAlreadyClaimed))
				} else {
					assert.NoError(t, got)
					owners[c.Claim] = ext.Caller
				}
			case runtime.RevokeClaim:
				owner, taken := owners[c.Claim]
				switch {
				case !taken:
					assert.True(t, errors.Is(got, poe.ErrClaimNotFound))
				case owner != ext.Caller:
					assert.True(t, errors.Is(got, poe.ErrNotOwner))
				default:
					assert.NoError(t, got)
					delete(owners, c.Claim)
				}
			}
		}

		for content, owner := range owners {
			got, ok := rt.GetClaim(content)
			require.True(t, ok)
			assert.Equal(t, owner, got)
		}
		assert.Len(t, rt.Snapshot().Claims, len(owners))
	}
}

func TestReadsOnUnknownKeys(t *testing.T) {
	rt := runtime.New()
	rt.SetBalance("alice", 1)

	assert.Equal(t, runtime.Balance(0), rt.BalanceOf("nobody"))
	assert.Equal(t, runtime.Nonce(0), rt.NonceOf("nobody"))
	_, ok := rt.GetClaim("nothing")
	assert.False(t, ok)
	assert.Len(t, rt.Snapshot().Balances, 1, "misses must not materialize entries")
}

func TestInvalidBlockAdvancesCounterOnly(t *testing.T) {
	rt := runtime.New()
	rt.ApplyGenesis(map[runtime.AccountID]runtime.Balance{"alice": 10})

	_, err := rt.ExecuteBlock(mocks.GenerateInvalidBlock(rt))
	assert.True(t, errors.Is(err, runtime.ErrBlockNumberMismatch))
	assert.Equal(t, runtime.BlockNumber(1), rt.BlockNumber())
	assert.Equal(t, runtime.Balance(10), rt.BalanceOf("alice"))
}
