package fieldz

// State represents the validation state of a Field.
type State int32

const (
	// StateUnchecked indicates no validation pass has completed yet.
	StateUnchecked State = iota

	// StateValid indicates the last validation pass returned no error.
	StateValid

	// StateInvalid indicates the last validation pass returned an error.
	// The field keeps cycling between Valid and Invalid as its value changes.
	StateInvalid
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnchecked:
		return "unchecked"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
