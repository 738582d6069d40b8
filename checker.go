package fieldz

import "sync"

// Snapshot is an immutable copy of a Checker's state after a validation pass.
type Snapshot struct {
	// Err is the error returned by the last pass, nil when valid.
	Err error

	// Count is the number of passes completed so far.
	Count uint64
}

// Valid reports whether the last pass found the value valid.
func (s Snapshot) Valid() bool {
	return s.Err == nil
}

// IsFirstCheck reports whether no pass has completed yet.
func (s Snapshot) IsFirstCheck() bool {
	return s.Count == 0
}

// ErrorMessage returns the error text, or "" when valid.
func (s Snapshot) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// State derives the field state from the snapshot.
func (s Snapshot) State() State {
	switch {
	case s.Count == 0:
		return StateUnchecked
	case s.Err == nil:
		return StateValid
	default:
		return StateInvalid
	}
}

// Checker holds the outcome of a field's validation: the last error and the
// number of passes performed. It is mutated only by its owning Field and
// notifies subscribers after every recorded pass, in the order passes were
// recorded.
//
// A zero Checker is ready to use and reports valid with no passes.
type Checker struct {
	mu    sync.RWMutex
	err   error
	count uint64

	// outbox holds committed snapshots awaiting delivery. One goroutine at a
	// time drains it.
	outbox     []Snapshot
	delivering bool

	subs observers[Snapshot]
}

// commit stores the result of one validation pass and queues it for
// delivery. It always increments the pass count, whether or not the result
// changed.
func (c *Checker) commit(err error) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = err
	c.count++
	snap := Snapshot{Err: c.err, Count: c.count}
	c.outbox = append(c.outbox, snap)
	return snap
}

// flush delivers queued snapshots to subscribers in commit order. If another
// goroutine is already delivering, or a subscriber triggers a pass from
// inside its callback, flush returns at once and the active deliverer picks
// the new snapshots up.
func (c *Checker) flush() {
	c.mu.Lock()
	if c.delivering {
		c.mu.Unlock()
		return
	}
	c.delivering = true
	for len(c.outbox) > 0 {
		snap := c.outbox[0]
		c.outbox[0] = Snapshot{}
		c.outbox = c.outbox[1:]
		c.mu.Unlock()

		c.subs.notify(snap)

		c.mu.Lock()
	}
	c.outbox = nil
	c.delivering = false
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Checker) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{Err: c.err, Count: c.count}
}

// Valid reports whether the last pass found the value valid.
// An unchecked field is valid: only a failing pass marks it invalid.
func (c *Checker) Valid() bool {
	return c.Snapshot().Valid()
}

// Err returns the error from the last pass, or nil.
func (c *Checker) Err() error {
	return c.Snapshot().Err
}

// ErrorMessage returns the error text from the last pass, or "".
func (c *Checker) ErrorMessage() string {
	return c.Snapshot().ErrorMessage()
}

// Count returns the number of completed passes.
func (c *Checker) Count() uint64 {
	return c.Snapshot().Count
}

// IsFirstCheck reports whether no pass has completed yet.
func (c *Checker) IsFirstCheck() bool {
	return c.Snapshot().IsFirstCheck()
}

// State returns the derived state.
func (c *Checker) State() State {
	return c.Snapshot().State()
}

// DisplayMessage returns the error message, suppressed until the first pass
// has completed. UIs use it to avoid flagging a field the user has not
// touched yet.
func (c *Checker) DisplayMessage() string {
	snap := c.Snapshot()
	if snap.IsFirstCheck() {
		return ""
	}
	return snap.ErrorMessage()
}

// Subscribe registers fn to be called with a Snapshot after every pass.
// The returned function removes the subscription.
func (c *Checker) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return c.subs.add(fn)
}
