package fieldz

import "sync"

// Member is the part of a Field a Form needs. Every *Field[T] is a Member.
type Member interface {
	Label() string
	Valid() bool
	ValidateNow()
	Close()
}

// Ensure Field implements Member.
var _ Member = (*Field[string])(nil)

// Form groups fields that are submitted together. It is valid only when
// every member is valid.
type Form struct {
	mu      sync.RWMutex
	members []Member
}

// NewForm creates a Form over members.
func NewForm(members ...Member) *Form {
	return &Form{members: members}
}

// Add appends members to the form.
func (f *Form) Add(members ...Member) *Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members = append(f.members, members...)
	return f
}

func (f *Form) snapshot() []Member {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Member(nil), f.members...)
}

// Valid reports whether every member is valid. An empty form is valid.
func (f *Form) Valid() bool {
	for _, m := range f.snapshot() {
		if !m.Valid() {
			return false
		}
	}
	return true
}

// Invalid returns the labels of members that are currently invalid, in the
// order they were added.
func (f *Form) Invalid() []string {
	var labels []string
	for _, m := range f.snapshot() {
		if !m.Valid() {
			labels = append(labels, m.Label())
		}
	}
	return labels
}

// ValidateAll runs ValidateNow on every member. Call it when the form first
// appears so submit controls reflect the initial values.
func (f *Form) ValidateAll() {
	for _, m := range f.snapshot() {
		m.ValidateNow()
	}
}

// IfValid wraps fn so it only runs while the form is valid. Use it as the
// commit action of a submit control.
func (f *Form) IfValid(fn func()) func() {
	return func() {
		if f.Valid() {
			fn()
		}
	}
}

// Close closes every member.
func (f *Form) Close() {
	for _, m := range f.snapshot() {
		m.Close()
	}
}
