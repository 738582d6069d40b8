package fieldz

import "github.com/zoobzio/capitan"

// Field keys for Field events.
var (
	// KeyField is the label of the Field emitting the event.
	KeyField = capitan.NewStringKey("field")

	// KeyState is the current state of the Field.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the validation or decode error message.
	KeyError = capitan.NewStringKey("error")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeyCheckCount is the number of validation passes completed.
	KeyCheckCount = capitan.NewIntKey("check_count")
)
