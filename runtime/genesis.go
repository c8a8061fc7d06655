package runtime

import (
	"maps"
	"slices"
)

// ApplyGenesis sets the initial balance of every account in balances, in
// account order. It does not touch block numbers or nonces.
func (r *Runtime) ApplyGenesis(balances map[AccountID]Balance) {
	for _, who := range slices.Sorted(maps.Keys(balances)) {
		r.balances.SetBalance(who, balances[who])
		r.log.WithField("component", "genesis").
			WithField("account", who).
			WithField("balance", balances[who]).
			Debug("Genesis balance set")
	}
}
