package fieldz

import "github.com/zoobzio/capitan"

// Field lifecycle signals.
var (
	// FieldBound is emitted when a Field attaches to an external cell.
	FieldBound = capitan.NewSignal(
		"fieldz.field.bound",
		"Field bound to external cell",
	)

	// FieldUnbound is emitted when a Field releases its external cell.
	FieldUnbound = capitan.NewSignal(
		"fieldz.field.unbound",
		"Field unbound from external cell",
	)

	// FieldClosed is emitted when a Field is closed and stops validating.
	FieldClosed = capitan.NewSignal(
		"fieldz.field.closed",
		"Field closed",
	)

	// FieldStateChanged is emitted when a Field transitions between states.
	FieldStateChanged = capitan.NewSignal(
		"fieldz.field.state.changed",
		"Field state transition",
	)
)

// Validation signals.
var (
	// FieldValueChanged is emitted when a Field accepts a new value.
	FieldValueChanged = capitan.NewSignal(
		"fieldz.field.value.changed",
		"Field value changed",
	)

	// FieldValidated is emitted when a validation pass finds the value valid.
	FieldValidated = capitan.NewSignal(
		"fieldz.field.validated",
		"Validation pass succeeded",
	)

	// FieldValidationFailed is emitted when a validation pass rejects the value.
	FieldValidationFailed = capitan.NewSignal(
		"fieldz.field.validation.failed",
		"Validation pass failed",
	)

	// FieldValidatorPanicked is emitted when the validator function panics.
	FieldValidatorPanicked = capitan.NewSignal(
		"fieldz.field.validator.panicked",
		"Validator function panicked",
	)

	// FieldDecodeFailed is emitted when a followed source emits undecodable data.
	FieldDecodeFailed = capitan.NewSignal(
		"fieldz.field.decode.failed",
		"Source payload could not be decoded",
	)
)
