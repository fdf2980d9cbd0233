package labeled

import (
	"sync"

	"diflabel/dclabel"
)

// Labeled binds a payload of type D to an immutable DCLabel. The
// container exclusively owns its payload; the label cannot change after
// construction. Labeled values are the only sanctioned shared state
// between tasks (spec §5): they may be cloned into each task or handed
// through a channel, and no payload data crosses the IFC boundary until a
// task explicitly unlabels.
type Labeled[D any] struct {
	mu    sync.RWMutex
	data  D
	label dclabel.DCLabel
}

// NewLabeledPrivileged binds data to label, bypassing any guard. This is
// the privileged primitive described in spec §4.4: misuse can fabricate
// labels, so it is meant for trusted code establishing the initial
// labeled values a program starts from. Normal code should receive
// Labeled values already constructed (as arguments, over a channel, or
// via Clone), and must not call this to launder unlabeled data into a
// label it does not actually have the authority to assert.
func NewLabeledPrivileged[D any](data D, label dclabel.DCLabel) *Labeled[D] {
	return &Labeled[D]{data: data, label: label}
}

// Label returns the container's label. Observing the label does not
// taint the current label: labels are assumed public metadata.
func (l *Labeled[D]) Label() dclabel.DCLabel {
	return l.label
}

// Clone returns an independent copy of l carrying the same label. Cloning
// never taints a current label: no payload crosses the IFC boundary until
// an explicit unlabel.
func (l *Labeled[D]) Clone() *Labeled[D] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &Labeled[D]{data: l.data, label: l.label}
}

// UnlabelRead taints t with l's label and returns the payload. After it
// returns, t.CurrentLabel() can-flow-to no longer holds in general --
// t's current label is now at least l's label.
func (l *Labeled[D]) UnlabelRead(t *Task) D {
	t.Taint(l.label)
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data
}

// WriteHandle grants exclusive mutable access to a Labeled's payload for
// the duration it is held. It must be closed to release the container's
// write lock; this is the type-system-enforced "exclusive borrow" spec's
// design notes call for in languages that lack Rust's borrow checker.
type WriteHandle[D any] struct {
	labeled *Labeled[D]
	closed  bool
}

// Value returns a pointer to the live payload. The pointer must not be
// used after Close.
func (w *WriteHandle[D]) Value() *D {
	return &w.labeled.data
}

// Close releases the exclusive write lock. Close is idempotent.
func (w *WriteHandle[D]) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.labeled.mu.Unlock()
}

// UnlabelWrite guards on l's label (failing with *ViolationError when the
// current label cannot flow to it), taints t on success, and returns a
// handle granting exclusive mutable access to the payload.
func (l *Labeled[D]) UnlabelWrite(t *Task) (*WriteHandle[D], error) {
	if err := t.GuardWrite(l.label); err != nil {
		return nil, err
	}
	l.mu.Lock()
	return &WriteHandle[D]{labeled: l}, nil
}
