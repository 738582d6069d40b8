package testing

import (
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/zoobzio/fieldz"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{name: "empty", value: "", wantMsg: "username cannot be empty"},
		{name: "too short", value: "al", wantMsg: "username is too short"},
		{name: "valid", value: "alice", wantMsg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.value)
			got := ""
			if err != nil {
				got = err.Error()
			}
			if got != tt.wantMsg {
				t.Errorf("Username(%q) = %q, want %q", tt.value, got, tt.wantMsg)
			}
		})
	}
}

func TestWaitFor(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		result := WaitFor(t, 100*time.Millisecond, func() bool {
			return true
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
	})

	t.Run("condition never met", func(t *testing.T) {
		result := WaitFor(t, 50*time.Millisecond, func() bool {
			return false
		})
		if result {
			t.Error("expected WaitFor to return false")
		}
	})

	t.Run("condition met after delay", func(t *testing.T) {
		start := time.Now()
		result := WaitFor(t, time.Second, func() bool {
			return time.Since(start) > 30*time.Millisecond
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
	})
}

func TestRequireHelpers(t *testing.T) {
	f := fieldz.NewField("", Username).Name("username")
	RequireState(t, f, fieldz.StateUnchecked)
	RequireCount(t, f, 0)

	f.ValidateNow()
	RequireState(t, f, fieldz.StateInvalid)
	RequireInvalid(t, f, "username cannot be empty")

	f.SetValue("alice")
	RequireState(t, f, fieldz.StateValid)
	RequireValid(t, f)
	RequireCount(t, f, 2)
}

func TestNewTestField(t *testing.T) {
	clock := clockz.NewFakeClock()
	f := NewTestField(t, clock, 100*time.Millisecond, Username)

	if f.Label() != t.Name() {
		t.Errorf("expected label %q, got %q", t.Name(), f.Label())
	}

	f.SetValue("a")
	f.SetValue("al")
	f.SetValue("alice")
	RequireCount(t, f, 0)

	clock.Advance(100 * time.Millisecond)
	clock.BlockUntilReady()

	if !WaitForState(t, f, fieldz.StateValid, time.Second) {
		t.Fatalf("expected valid state, got %s", f.State())
	}
	RequireCount(t, f, 1)
}
