package handlers

import (
	"fmt"
	"net/http"

	"gopallet/runtime/store"
)

func HandleChainHeight(w http.ResponseWriter, r *http.Request, store store.StateStore) {
	number, err := store.BlockNumber()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get block number: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]uint64{
		"block_number": uint64(number),
	})
}

// HandleState returns the full state snapshot. With ?format=text the
// indented debug rendering is returned instead of JSON.
func HandleState(w http.ResponseWriter, r *http.Request, store store.StateStore) {
	snapshot, err := store.Snapshot()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to snapshot state: %v", err))
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, snapshot.String())
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
