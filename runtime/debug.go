package runtime

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// AccountNonce is one entry of the system nonce map.
type AccountNonce struct {
	Account AccountID `json:"account"`
	Nonce   Nonce     `json:"nonce"`
}

// AccountBalance is one entry of the balances map.
type AccountBalance struct {
	Account AccountID `json:"account"`
	Balance Balance   `json:"balance"`
}

// Claim is one proof-of-existence entry.
type Claim struct {
	Content Content   `json:"content"`
	Owner   AccountID `json:"owner"`
}

// Snapshot is a point-in-time copy of all runtime state, sorted by key.
type Snapshot struct {
	Phase       Phase            `json:"phase"`
	BlockNumber BlockNumber      `json:"block_number"`
	Nonces      []AccountNonce   `json:"nonces"`
	Balances    []AccountBalance `json:"balances"`
	Claims      []Claim          `json:"claims"`
}

// Snapshot copies the current state.
func (r *Runtime) Snapshot() Snapshot {
	nonces := r.system.Nonces()
	balances := r.balances.Balances()
	claims := r.proofOfExistence.Claims()

	s := Snapshot{
		Phase:       r.phase,
		BlockNumber: r.system.BlockNumber(),
		Nonces:      make([]AccountNonce, 0, len(nonces)),
		Balances:    make([]AccountBalance, 0, len(balances)),
		Claims:      make([]Claim, 0, len(claims)),
	}
	for _, who := range slices.Sorted(maps.Keys(nonces)) {
		s.Nonces = append(s.Nonces, AccountNonce{Account: who, Nonce: nonces[who]})
	}
	for _, who := range slices.Sorted(maps.Keys(balances)) {
		s.Balances = append(s.Balances, AccountBalance{Account: who, Balance: balances[who]})
	}
	for _, content := range slices.Sorted(maps.Keys(claims)) {
		s.Claims = append(s.Claims, Claim{Content: content, Owner: claims[content]})
	}
	return s
}

// String renders the runtime state as an indented tree.
func (r *Runtime) String() string {
	return r.Snapshot().String()
}

func (s Snapshot) String() string {
	var b strings.Builder
	b.WriteString("Runtime {\n")
	b.WriteString("    system: Pallet {\n")
	fmt.Fprintf(&b, "        block_number: %d,\n", s.BlockNumber)
	b.WriteString("        nonce: {\n")
	for _, n := range s.Nonces {
		fmt.Fprintf(&b, "            %q: %d,\n", n.Account, n.Nonce)
	}
	b.WriteString("        },\n")
	b.WriteString("    },\n")
	b.WriteString("    balances: Pallet {\n")
	b.WriteString("        balances: {\n")
	for _, bal := range s.Balances {
		fmt.Fprintf(&b, "            %q: %d,\n", bal.Account, bal.Balance)
	}
	b.WriteString("        },\n")
	b.WriteString("    },\n")
	b.WriteString("    proof_of_existence: Pallet {\n")
	b.WriteString("        claims: {\n")
	for _, c := range s.Claims {
		fmt.Fprintf(&b, "            %q: %q,\n", c.Content, c.Owner)
	}
	b.WriteString("        },\n")
	b.WriteString("    },\n")
	b.WriteString("}")
	return b.String()
}
