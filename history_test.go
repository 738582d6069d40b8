package fieldz

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func messages(errs []error) []string {
	if errs == nil {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

func TestHistory_NilSafe(t *testing.T) {
	var h *history

	// All operations should be safe on nil
	h.record(errors.New("test"))
	h.reset()

	if h.list() != nil {
		t.Error("expected nil from nil history")
	}
}

func TestHistory_DisabledSizes(t *testing.T) {
	if newHistory(0) != nil {
		t.Error("expected nil history for size 0")
	}
	if newHistory(-1) != nil {
		t.Error("expected nil history for negative size")
	}
}

func TestHistory_FillsWithoutWrapping(t *testing.T) {
	h := newHistory(3)
	h.record(errors.New("empty"))
	h.record(errors.New("format"))

	want := []string{"empty", "format"}
	if diff := cmp.Diff(want, messages(h.list())); diff != "" {
		t.Errorf("list() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_WrapsAndEvictsOldest(t *testing.T) {
	h := newHistory(3)
	for _, msg := range []string{"one", "two", "three", "four", "five"} {
		h.record(errors.New(msg))
	}

	want := []string{"three", "four", "five"}
	if diff := cmp.Diff(want, messages(h.list())); diff != "" {
		t.Errorf("list() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_ResetThenRecord(t *testing.T) {
	h := newHistory(2)
	h.record(errors.New("one"))
	h.record(errors.New("two"))
	h.reset()

	if got := h.list(); got != nil {
		t.Fatalf("expected nil after reset, got %v", got)
	}

	h.record(errors.New("three"))
	if diff := cmp.Diff([]string{"three"}, messages(h.list())); diff != "" {
		t.Errorf("list() mismatch (-want +got):\n%s", diff)
	}
}
