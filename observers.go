package fieldz

import "sync"

// observers is an ordered list of callbacks notified with values of type T.
// Callbacks run on the notifying goroutine, outside the list's lock, so a
// callback may subscribe or unsubscribe without deadlocking.
type observers[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription[T]
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// add registers fn and returns a function that removes it. The returned
// function is safe to call more than once.
func (o *observers[T]) add(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

func (o *observers[T]) remove(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
			return
		}
	}
}

// notify calls every registered callback in registration order.
func (o *observers[T]) notify(v T) {
	o.mu.Lock()
	subs := o.subs
	o.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

func (o *observers[T]) len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}
