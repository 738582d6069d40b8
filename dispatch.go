package fieldz

import (
	"context"
	"sync"
)

// Dispatcher is the scheduling context validation passes run on. It plays the
// role of a UI main loop: debounced passes and ValidateNow are handed to
// Dispatch. Synchronous passes (no debounce) run inside SetValue instead.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts an ordinary function to a Dispatcher.
type DispatcherFunc func(fn func())

// Dispatch calls d(fn).
func (d DispatcherFunc) Dispatch(fn func()) {
	d(fn)
}

// Inline runs every task in place on the calling goroutine. It is the default
// Dispatcher and makes ValidateNow synchronous.
var Inline Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// Loop is a serial executor: tasks run one at a time, in dispatch order, on
// the goroutine that called Run. Use it when every field mutation must happen
// on a single designated goroutine.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake chan struct{}
	done chan struct{}
	once sync.Once
}

// NewLoop creates a Loop. Call Run to start executing tasks.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Dispatch queues fn. The queue is unbounded, so tasks may dispatch further
// tasks without blocking. Tasks dispatched after Close are dropped.
func (l *Loop) Dispatch(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes queued tasks until ctx is canceled or Close is called.
// It must be called from exactly one goroutine.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.drain()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case <-l.wake:
		}
	}
}

// drain runs tasks until the queue is empty.
func (l *Loop) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 || l.closed {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}

// Close stops the loop and discards pending tasks. It is idempotent.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()
		close(l.done)
	})
}
