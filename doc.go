/*
Package fieldz provides reactive validation for editable values such as the
fields of a form.

A Field holds a value and a validator function. Every time the value changes
the validator runs, optionally debounced, and the outcome is recorded in a
Checker that UI code reads or subscribes to. fieldz is designed to be embedded
in view models, not run as a standalone service.

# Basic Usage

Create a field with its rules in priority order:

	username := fieldz.NewField("", fieldz.Chain(
	    fieldz.Required("username cannot be empty"),
	    fieldz.MinLength(3, "username is too short"),
	)).
	    Name("username").
	    Debounce(700 * time.Millisecond)

	username.ValidateNow()        // validate when the view appears
	username.SetValue("alice")    // validated once typing pauses

	if !username.Valid() {
	    show(username.DisplayMessage())
	}

A field starts unchecked: Valid reports true and the error message is empty
until the first pass. DisplayMessage stays empty while IsFirstCheck holds, so
an untouched form does not greet the user with errors.

# Debounce

With no debounce the pass runs inside SetValue. With a debounce, each
SetValue cancels the pending pass and schedules a new one; only the value that
survives the quiet period is validated. Bind, Unbind and Close also cancel
the pending pass. Use clockz.NewFakeClock with Clock for deterministic tests.

# Binding

A field can be bound to one external Cell at a time. Writes to the field are
pushed to the cell and changes published by the cell funnel into SetValue.
Var is an in-memory Cell:

	text := fieldz.NewVar("")
	_ = username.Bind(text)
	text.Set("bob") // username now holds "bob" and schedules a pass

Binding copies nothing and validates nothing. Rebinding replaces the old
binding.

# Forms

A Form groups fields that are submitted together:

	form := fieldz.NewForm(username, email)
	form.ValidateAll()
	submit := form.IfValid(save)

# External Sources

Follow drives a field from a Source (a channel or a file) through a Codec,
for values edited outside the UI:

	err := fieldz.Follow(ctx, port, fieldz.NewFileSource("port.yaml"), fieldz.YAMLCodec{})

# Observability

Fields emit capitan signals (FieldValueChanged, FieldValidated,
FieldValidationFailed, FieldStateChanged and the lifecycle signals), log
validator panics through zap, and report to a MetricsProvider. The
pkg/prometheus package provides a client_golang MetricsProvider.
*/
package fieldz
