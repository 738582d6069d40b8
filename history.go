package fieldz

import "sync"

// history is a thread-safe ring of the most recent validation failures.
// A nil history is valid and records nothing.
type history struct {
	mu    sync.RWMutex
	buf   []error
	next  int
	count int
}

// newHistory returns a history holding up to size failures, or nil if size <= 0.
func newHistory(size int) *history {
	if size <= 0 {
		return nil
	}
	return &history{buf: make([]error, size)}
}

// record appends err, evicting the oldest entry when full.
func (h *history) record(err error) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf[h.next] = err
	h.next = (h.next + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// reset drops every recorded failure.
func (h *history) reset() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.buf)
	h.next = 0
	h.count = 0
}

// list returns the recorded failures, oldest first.
func (h *history) list() []error {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return nil
	}
	size := len(h.buf)
	out := make([]error, h.count)
	start := (h.next - h.count + size) % size
	for i := range out {
		out[i] = h.buf[(start+i)%size]
	}
	return out
}
