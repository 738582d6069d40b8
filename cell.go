package fieldz

import "sync"

// Cell is a mutable value owned by the host application that a Field can be
// bound to. Writes to the Field propagate to the cell, and changes published
// by the cell funnel back into the Field.
type Cell[T any] interface {
	// Get returns the current value.
	Get() T

	// Set replaces the current value.
	Set(T)

	// Subscribe registers fn to be called with every new value and returns
	// a function that removes the subscription.
	Subscribe(fn func(T)) (unsubscribe func())
}

// Var is an in-memory Cell that notifies subscribers when its value changes.
// It plays the role of a published property on a view model.
type Var[T comparable] struct {
	mu    sync.RWMutex
	value T
	subs  observers[T]
}

// NewVar creates a Var holding initial.
func NewVar[T comparable](initial T) *Var[T] {
	return &Var[T]{value: initial}
}

// Get returns the current value.
func (v *Var[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores value and notifies subscribers. Setting an equal value is a no-op.
func (v *Var[T]) Set(value T) {
	v.mu.Lock()
	if v.value == value {
		v.mu.Unlock()
		return
	}
	v.value = value
	v.mu.Unlock()

	v.subs.notify(value)
}

// Subscribe registers fn to be called after every change.
func (v *Var[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return v.subs.add(fn)
}

// Ensure Var implements Cell.
var _ Cell[string] = (*Var[string])(nil)
