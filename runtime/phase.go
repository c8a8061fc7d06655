package runtime

import "fmt"

// Phase is the block executor state.
type Phase int32

const (
	PhaseNotStarted Phase = iota
	PhaseBlockInProgress
	PhaseBlockCommitted
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseBlockInProgress:
		return "block-in-progress"
	case PhaseBlockCommitted:
		return "block-committed"
	default:
		return fmt.Sprintf("phase(%d)", p)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseNotStarted, PhaseBlockInProgress, PhaseBlockCommitted} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
