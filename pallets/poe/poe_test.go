package poe

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPallet = Pallet[string, string]

func newTestPallet() *testPallet {
	return New[string, string]()
}

func TestBasicProofOfExistence(t *testing.T) {
	claims := newTestPallet()

	_, ok := claims.GetClaim("X")
	assert.False(t, ok)

	require.NoError(t, claims.CreateClaim("alice", "X"))
	owner, ok := claims.GetClaim("X")
	require.True(t, ok)
	assert.Equal(t, "alice", owner)

	assert.True(t, errors.Is(claims.CreateClaim("bob", "X"), ErrAlreadyClaimed))
	assert.True(t, errors.Is(claims.RevokeClaim("bob", "X"), ErrNotOwner))

	require.NoError(t, claims.RevokeClaim("alice", "X"))
	_, ok = claims.GetClaim("X")
	assert.False(t, ok)
}

func TestRevokeChecksExistenceFirst(t *testing.T) {
	claims := newTestPallet()

	err := claims.RevokeClaim("alice", "missing")
	assert.True(t, errors.Is(err, ErrClaimNotFound))
	assert.False(t, errors.Is(err, ErrNotOwner))
}

func TestCreateClaimAgainAfterRevoke(t *testing.T) {
	claims := newTestPallet()

	require.NoError(t, claims.CreateClaim("alice", "X"))
	assert.True(t, errors.Is(claims.CreateClaim("alice", "X"), ErrAlreadyClaimed), "owner cannot claim twice")
	require.NoError(t, claims.RevokeClaim("alice", "X"))
	require.NoError(t, claims.CreateClaim("bob", "X"))

	owner, _ := claims.GetClaim("X")
	assert.Equal(t, "bob", owner)
	assert.Equal(t, map[string]string{"X": "bob"}, claims.Claims())
}

func TestOneOwnerPerClaim(t *testing.T) {
	claims := newTestPallet()
	callers := []string{"alice", "bob", "charlie", "alice", "bob"}

	succeeded := 0
	for _, caller := range callers {
		if err := claims.CreateClaim(caller, "doc"); err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, ErrAlreadyClaimed))
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, claims.Claims(), 1)
}

func TestDispatch(t *testing.T) {
	claims := newTestPallet()

	tests := []struct {
		name    string
		caller  string
		call    Call[string, string]
		wantErr error
	}{
		{name: "create", caller: "alice", call: CreateClaim[string, string]{Claim: "X"}},
		{name: "create duplicate", caller: "bob", call: CreateClaim[string, string]{Claim: "X"}, wantErr: ErrAlreadyClaimed},
		{name: "revoke by stranger", caller: "bob", call: RevokeClaim[string, string]{Claim: "X"}, wantErr: ErrNotOwner},
		{name: "revoke missing", caller: "bob", call: RevokeClaim[string, string]{Claim: "Y"}, wantErr: ErrClaimNotFound},
		{name: "revoke by owner", caller: "alice", call: RevokeClaim[string, string]{Claim: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := claims.Dispatch(tt.caller, tt.call)
			assert.Equal(t, tt.wantErr, err)
		})
	}

	assert.Empty(t, claims.Claims())
	assert.Equal(t, "poe.create_claim", CreateClaim[string, string]{}.Name())
	assert.Equal(t, "poe.revoke_claim", RevokeClaim[string, string]{}.Name())
}
