// Package testing provides test utilities and helpers for fieldz fields.
package testing

import (
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/zoobzio/fieldz"
)

// Username is a standard string rule for tests: non-empty, then at least
// three characters.
var Username = fieldz.Chain(
	fieldz.Required("username cannot be empty"),
	fieldz.MinLength(3, "username is too short"),
)

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForState waits until the field reaches the expected state or timeout occurs.
func WaitForState[T comparable](t *testing.T, f *fieldz.Field[T], expected fieldz.State, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return f.State() == expected
	})
}

// RequireState fails the test immediately if the field is not in the expected state.
func RequireState[T comparable](t *testing.T, f *fieldz.Field[T], expected fieldz.State) {
	t.Helper()
	if got := f.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequireValid fails the test if the field has a recorded error.
func RequireValid[T comparable](t *testing.T, f *fieldz.Field[T]) {
	t.Helper()
	if !f.Valid() {
		t.Fatalf("expected %s to be valid, got error %q", f.Label(), f.ErrorMessage())
	}
}

// RequireInvalid fails the test unless the field holds exactly the given message.
func RequireInvalid[T comparable](t *testing.T, f *fieldz.Field[T], message string) {
	t.Helper()
	if f.Valid() {
		t.Fatalf("expected %s to be invalid with %q, got valid", f.Label(), message)
	}
	if got := f.ErrorMessage(); got != message {
		t.Fatalf("expected error %q, got %q", message, got)
	}
}

// RequireCount fails the test if the field has not run exactly n passes.
func RequireCount[T comparable](t *testing.T, f *fieldz.Field[T], n uint64) {
	t.Helper()
	if got := f.Checker().Count(); got != n {
		t.Fatalf("expected %d validation passes, got %d", n, got)
	}
}

// NewTestField creates a debounced string field driven by clock and closed
// at test cleanup.
func NewTestField(t *testing.T, clock clockz.Clock, debounce time.Duration, validate fieldz.ValidatorFunc[string]) *fieldz.Field[string] {
	t.Helper()
	f := fieldz.NewField("", validate).
		Name(t.Name()).
		Debounce(debounce).
		Clock(clock)
	t.Cleanup(f.Close)
	return f
}
