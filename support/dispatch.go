package support

import (
	"reflect"

	"github.com/pkg/errors"
)

// ErrNilCall is returned when an extrinsic carries no call value.
var ErrNilCall = errors.New("nil call")

// Call is implemented by every call variant of every module.
type Call interface {
	// Name is the stable "<module>.<operation>" identifier of the call.
	Name() string
}

// Dispatcher routes a call made by caller to the state transition that
// handles it. Module errors are returned unchanged.
type Dispatcher[Caller any, C Call] interface {
	Dispatch(caller Caller, call C) error
}

// CallName returns call.Name(), tolerating a nil call.
func CallName(call Call) string {
	if IsNilCall(call) {
		return "<nil>"
	}
	return call.Name()
}

// IsNilCall reports whether call is nil or a nil pointer wrapped in the
// interface. A typed nil passes a plain == nil check but cannot be applied.
func IsNilCall(call any) bool {
	if call == nil {
		return true
	}
	v := reflect.ValueOf(call)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}
