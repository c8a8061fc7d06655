package handlers

import (
	"fmt"
	"net/http"

	"gopallet/runtime"
	"gopallet/runtime/store"
)

type AccountResponse struct {
	Account runtime.AccountID `json:"account"`
	Balance runtime.Balance   `json:"balance"`
	Nonce   runtime.Nonce     `json:"nonce"`
}

// HandleGetAccount reports balance and nonce for {id}. Unknown accounts read
// as zero.
func HandleGetAccount(w http.ResponseWriter, r *http.Request, store store.StateStore) {
	id := urlParam(r, "id")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Account id required in URL")
		return
	}

	balance, err := store.BalanceOf(id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get balance: %v", err))
		return
	}
	nonce, err := store.NonceOf(id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get nonce: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, AccountResponse{Account: id, Balance: balance, Nonce: nonce})
}
