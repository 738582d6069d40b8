package fieldz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

var (
	// ErrClosed is returned when binding a Field that has been closed.
	ErrClosed = errors.New("field closed")

	// ErrNilCell is returned when Bind is called with a nil cell.
	ErrNilCell = errors.New("nil cell")

	// ErrValidatorFault is recorded in place of a result when the validator panics.
	ErrValidatorFault = errors.New("internal validation error")
)

// ValidatorFunc checks a candidate value. It returns nil when the value is
// valid, or an error whose message is shown to the user. Validators must be
// pure: they may read other fields but must not mutate the field they check.
type ValidatorFunc[T any] func(T) error

// Field holds a value and re-validates it every time it changes. Passes are
// optionally debounced: only the last value set within the debounce window is
// validated. The outcome is kept in a Checker that UI code can read or
// subscribe to.
//
// A Field may be bound to one external Cell at a time. Writes to the field are
// pushed to the cell and changes published by the cell are written back
// through SetValue.
type Field[T comparable] struct {
	validate   ValidatorFunc[T]
	debounce   time.Duration
	clock      clockz.Clock
	dispatcher Dispatcher
	metrics    MetricsProvider
	logger     *zap.Logger
	name       string
	ctx        context.Context

	checker  Checker
	failures *history

	mu      sync.Mutex
	value   T
	gen     uint64
	pending *pending
	cell    Cell[T]
	release func()
	closed  bool

	// bindMu serializes Bind, Unbind and Close.
	bindMu sync.Mutex

	// passMu serializes validation passes so results commit in order.
	passMu sync.Mutex
}

// pending is a scheduled debounced pass.
type pending struct {
	timer clockz.Timer
	stop  chan struct{}
}

func (p *pending) cancel() {
	p.timer.Stop()
	close(p.stop)
}

// NewField creates a Field holding initial and checked by validate.
// No pass runs until the value changes or ValidateNow is called.
// A nil validate accepts every value.
//
// Example:
//
//	username := fieldz.NewField("", func(v string) error {
//	    if v == "" {
//	        return errors.New("username cannot be empty")
//	    }
//	    return nil
//	}).Name("username").Debounce(700 * time.Millisecond)
//
//	username.ValidateNow()
func NewField[T comparable](initial T, validate ValidatorFunc[T]) *Field[T] {
	return &Field[T]{
		validate:   validate,
		value:      initial,
		clock:      clockz.RealClock,
		dispatcher: Inline,
		logger:     zap.NewNop(),
		name:       "field",
		ctx:        context.Background(),
	}
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Debounce sets the quiet period a value must survive before it is validated.
// Zero (the default) validates synchronously inside SetValue.
// Must be called before the field is used.
func (f *Field[T]) Debounce(d time.Duration) *Field[T] {
	f.debounce = d
	return f
}

// Clock sets a custom clock for debounce timers.
// Use this with clockz.FakeClock for deterministic debounce testing.
// Must be called before the field is used.
func (f *Field[T]) Clock(clock clockz.Clock) *Field[T] {
	f.clock = clock
	return f
}

// Dispatcher sets the scheduling context that debounced passes and
// ValidateNow run on. Default: Inline. With no debounce, SetValue runs its
// pass on the calling goroutine without going through the dispatcher, so the
// result is committed before SetValue returns.
// Must be called before the field is used.
func (f *Field[T]) Dispatcher(d Dispatcher) *Field[T] {
	f.dispatcher = d
	return f
}

// Metrics sets a metrics provider for observability integration.
// Must be called before the field is used.
func (f *Field[T]) Metrics(provider MetricsProvider) *Field[T] {
	f.metrics = provider
	return f
}

// Logger sets the logger used to report validator faults.
// Default: a no-op logger. Must be called before the field is used.
func (f *Field[T]) Logger(logger *zap.Logger) *Field[T] {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// Name sets the label used in events, logs and metrics.
// Must be called before the field is used.
func (f *Field[T]) Name(name string) *Field[T] {
	f.name = name
	return f
}

// Context sets the context events are emitted with.
// Must be called before the field is used.
func (f *Field[T]) Context(ctx context.Context) *Field[T] {
	f.ctx = ctx
	return f
}

// ErrorHistorySize sets the number of recent validation failures to retain.
// The history is cleared by every valid pass. Use 0 (default) to disable it.
// Must be called before the field is used.
func (f *Field[T]) ErrorHistorySize(n int) *Field[T] {
	f.failures = newHistory(n)
	return f
}

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

// Value returns the current value.
func (f *Field[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Label returns the name set with Name.
func (f *Field[T]) Label() string {
	return f.name
}

// Checker returns the field's validation state.
func (f *Field[T]) Checker() *Checker {
	return &f.checker
}

// Valid reports whether the last pass accepted the value.
func (f *Field[T]) Valid() bool {
	return f.checker.Valid()
}

// Err returns the error from the last pass, or nil.
func (f *Field[T]) Err() error {
	return f.checker.Err()
}

// ErrorMessage returns the error text from the last pass, or "".
func (f *Field[T]) ErrorMessage() string {
	return f.checker.ErrorMessage()
}

// DisplayMessage returns the error text, suppressed before the first pass.
func (f *Field[T]) DisplayMessage() string {
	return f.checker.DisplayMessage()
}

// IsFirstCheck reports whether no pass has completed yet.
func (f *Field[T]) IsFirstCheck() bool {
	return f.checker.IsFirstCheck()
}

// State returns the derived validation state.
func (f *Field[T]) State() State {
	return f.checker.State()
}

// ErrorHistory returns the recent validation failures, oldest first.
// Returns nil if error history is not enabled (see ErrorHistorySize).
func (f *Field[T]) ErrorHistory() []error {
	return f.failures.list()
}

// Subscribe registers fn to be called after every validation pass.
func (f *Field[T]) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return f.checker.Subscribe(fn)
}

// IsBound reports whether the field is attached to an external cell.
func (f *Field[T]) IsBound() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cell != nil
}

// -----------------------------------------------------------------------------
// Writes
// -----------------------------------------------------------------------------

// SetValue stores v and schedules validation. Setting the current value, or
// any value after Close, is a no-op.
//
// With no debounce the pass runs before SetValue returns. Otherwise any
// pending pass is canceled and a new one is scheduled to run once the
// debounce interval elapses without further changes.
func (f *Field[T]) SetValue(v T) {
	f.mu.Lock()
	if f.closed || f.value == v {
		f.mu.Unlock()
		return
	}
	f.value = v
	f.gen++
	gen := f.gen
	f.cancelPendingLocked()
	if f.debounce > 0 {
		f.scheduleLocked(gen, v)
	}
	cell := f.cell
	f.mu.Unlock()

	capitan.Emit(f.ctx, FieldValueChanged,
		KeyField.Field(f.name),
	)
	if f.metrics != nil {
		f.metrics.OnValueChanged(f.name)
	}

	// The cell echoes the write back through SetValue, which stops at the
	// equality check above.
	if cell != nil {
		cell.Set(v)
	}

	if f.debounce <= 0 {
		f.pass(v, gen)
	}
}

// ValidateNow runs a pass against the current value on the field's
// dispatcher, bypassing debounce. Use it to validate a field when it first
// appears, or when a field it depends on has changed.
//
// With the default Inline dispatcher the pass completes before ValidateNow
// returns; with a Loop, observers see the result once the loop runs it.
func (f *Field[T]) ValidateNow() {
	f.dispatcher.Dispatch(func() {
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return
		}
		v := f.value
		f.mu.Unlock()

		f.pass(v, 0)
	})
}

// Bind attaches the field to cell, replacing any previous binding. Pending
// debounced passes are canceled. Binding copies no values and runs no pass.
func (f *Field[T]) Bind(cell Cell[T]) error {
	if cell == nil {
		return fmt.Errorf("bind %s: %w", f.name, ErrNilCell)
	}

	f.bindMu.Lock()
	defer f.bindMu.Unlock()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return fmt.Errorf("bind %s: %w", f.name, ErrClosed)
	}
	release := f.detachLocked()
	f.mu.Unlock()

	if release != nil {
		release()
	}

	unsubscribe := cell.Subscribe(f.SetValue)

	f.mu.Lock()
	f.cell = cell
	f.release = unsubscribe
	f.mu.Unlock()

	capitan.Emit(f.ctx, FieldBound,
		KeyField.Field(f.name),
		KeyDebounce.Field(f.debounce),
	)
	return nil
}

// Unbind detaches the external cell and cancels any pending pass. The value
// and validation state are left as they are.
func (f *Field[T]) Unbind() {
	f.bindMu.Lock()
	defer f.bindMu.Unlock()

	f.mu.Lock()
	bound := f.cell != nil
	release := f.detachLocked()
	f.mu.Unlock()

	if release != nil {
		release()
	}
	if bound {
		capitan.Emit(f.ctx, FieldUnbound,
			KeyField.Field(f.name),
		)
	}
}

// Close cancels any pending pass, releases the binding and stops the field
// from validating again. It is idempotent.
func (f *Field[T]) Close() {
	f.bindMu.Lock()
	defer f.bindMu.Unlock()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	release := f.detachLocked()
	f.mu.Unlock()

	if release != nil {
		release()
	}
	capitan.Emit(f.ctx, FieldClosed,
		KeyField.Field(f.name),
		KeyState.Field(f.State().String()),
	)
}

// detachLocked invalidates any pending pass and clears the binding slot.
// It returns the cell's unsubscribe function for the caller to run unlocked.
func (f *Field[T]) detachLocked() func() {
	f.gen++
	f.cancelPendingLocked()
	release := f.release
	f.cell = nil
	f.release = nil
	return release
}

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

// scheduleLocked arms a debounce timer for the pass of generation gen.
func (f *Field[T]) scheduleLocked(gen uint64, v T) {
	p := &pending{
		timer: f.clock.NewTimer(f.debounce),
		stop:  make(chan struct{}),
	}
	f.pending = p

	go func() {
		select {
		case <-p.timer.C():
			f.dispatcher.Dispatch(func() {
				f.fire(p, gen, v)
			})
		case <-p.stop:
		}
	}()
}

func (f *Field[T]) cancelPendingLocked() {
	if f.pending != nil {
		f.pending.cancel()
		f.pending = nil
	}
}

// fire runs a debounced pass unless it was superseded while waiting.
func (f *Field[T]) fire(p *pending, gen uint64, v T) {
	f.mu.Lock()
	if f.pending == p {
		f.pending = nil
	}
	f.mu.Unlock()

	f.pass(v, gen)
}

// pass validates v and commits the result. A non-zero gen ties the pass to
// the SetValue that produced it: if the value changed, the field was unbound
// or closed in the meantime, the pass is dropped. ValidateNow passes 0 and is
// only dropped after Close. Staleness is checked before the validator runs
// and again before commit, since the validator runs unlocked.
func (f *Field[T]) pass(v T, gen uint64) {
	f.passMu.Lock()

	if f.stale(gen) {
		f.passMu.Unlock()
		return
	}

	start := f.clock.Now()
	err := f.check(v)
	elapsed := f.clock.Since(start)

	f.mu.Lock()
	if f.staleLocked(gen) {
		f.mu.Unlock()
		f.passMu.Unlock()
		return
	}
	prev := f.checker.State()
	snap := f.checker.commit(err)
	f.mu.Unlock()

	if err != nil {
		f.failures.record(err)
	} else {
		f.failures.reset()
	}
	f.passMu.Unlock()

	f.report(prev, snap, elapsed)
	f.checker.flush()
}

func (f *Field[T]) stale(gen uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staleLocked(gen)
}

func (f *Field[T]) staleLocked(gen uint64) bool {
	return f.closed || (gen != 0 && gen != f.gen)
}

// check runs the validator, converting a panic into ErrValidatorFault.
func (f *Field[T]) check(v T) (err error) {
	if f.validate == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = ErrValidatorFault
			f.logger.Error("validator panicked",
				zap.String("field", f.name),
				zap.Any("panic", r),
			)
			capitan.Emit(f.ctx, FieldValidatorPanicked,
				KeyField.Field(f.name),
				KeyError.Field(fmt.Sprint(r)),
			)
			if f.metrics != nil {
				f.metrics.OnValidatorFault(f.name)
			}
		}
	}()

	return f.validate(v)
}

// report emits events and metrics for a committed pass.
func (f *Field[T]) report(prev State, snap Snapshot, elapsed time.Duration) {
	if snap.Valid() {
		capitan.Emit(f.ctx, FieldValidated,
			KeyField.Field(f.name),
			KeyCheckCount.Field(int(snap.Count)), //nolint:gosec // Pass counts stay far below MaxInt
		)
	} else {
		capitan.Emit(f.ctx, FieldValidationFailed,
			KeyField.Field(f.name),
			KeyError.Field(snap.ErrorMessage()),
			KeyCheckCount.Field(int(snap.Count)), //nolint:gosec // Pass counts stay far below MaxInt
		)
	}

	next := snap.State()
	if prev != next {
		capitan.Emit(f.ctx, FieldStateChanged,
			KeyField.Field(f.name),
			KeyOldState.Field(prev.String()),
			KeyNewState.Field(next.String()),
		)
		if f.metrics != nil {
			f.metrics.OnStateChange(f.name, prev, next)
		}
	}

	if f.metrics != nil {
		f.metrics.OnValidation(f.name, snap.Valid(), elapsed)
	}
}
