package runtime

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrBlockNumberMismatch = errors.New("incoming block number does not match")
	ErrBlockInProgress     = errors.New("block execution already in progress")
)

// BlockNumberMismatchError is returned when a block's header does not carry
// the number the runtime just advanced to. It matches ErrBlockNumberMismatch.
type BlockNumberMismatchError struct {
	Expected BlockNumber
	Got      BlockNumber
}

func (e BlockNumberMismatchError) Error() string {
	return fmt.Sprintf("%v: expected %d, got %d", ErrBlockNumberMismatch, e.Expected, e.Got)
}

func (e BlockNumberMismatchError) Is(target error) bool {
	return target == ErrBlockNumberMismatch
}
