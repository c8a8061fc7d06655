package handlers

import (
	"fmt"
	"net/http"

	"gopallet/runtime"
	"gopallet/runtime/store"
)

func HandleGetClaim(w http.ResponseWriter, r *http.Request, store store.StateStore) {
	content := urlParam(r, "content")
	if content == "" {
		WriteError(w, http.StatusBadRequest, "Claim content required in URL")
		return
	}

	owner, ok, err := store.GetClaim(content)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get claim: %v", err))
		return
	}
	if !ok {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("No claim for %q", content))
		return
	}

	writeJSON(w, http.StatusOK, runtime.Claim{Content: content, Owner: owner})
}
