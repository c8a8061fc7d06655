package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"gopallet/codec"
	"gopallet/runtime"
)

// MaxBlockBytes caps the size of a submitted block body.
const MaxBlockBytes = 1 << 20

// BlockExecutor runs a decoded block. *processing.BlockProcessor satisfies it.
type BlockExecutor interface {
	ProcessBlock(block runtime.Block) (*runtime.Receipt, error)
}

// MismatchResponse is returned with 409 when the header number is wrong.
type MismatchResponse struct {
	ErrorResponse
	Expected runtime.BlockNumber `json:"expected"`
	Got      runtime.BlockNumber `json:"got"`
}

func HandleSubmitBlock(w http.ResponseWriter, r *http.Request, executor BlockExecutor) {

	// 1. Deserialize
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBlockBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Block exceeds %d bytes", tooLarge.Limit))
			return
		}
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read block: %v", err))
		return
	}
	block, err := codec.DecodeBlock(body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid block: %v", err))
		return
	}

	// 2. Business Logic
	receipt, err := executor.ProcessBlock(block)
	if err != nil {
		var mismatch runtime.BlockNumberMismatchError
		if errors.As(err, &mismatch) {
			writeJSON(w, http.StatusConflict, MismatchResponse{
				ErrorResponse: ErrorResponse{
					Error:   http.StatusText(http.StatusConflict),
					Message: err.Error(),
				},
				Expected: mismatch.Expected,
				Got:      mismatch.Got,
			})
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Block execution failed: %v", err))
		return
	}

	// 3. Success Response
	writeJSON(w, http.StatusOK, receipt)
}
