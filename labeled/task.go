// Package labeled implements the labeled container and the per-task
// ambient "current label" runtime: the mechanism that raises taint on
// every read and gates every write so information already absorbed into
// a task never leaks to a less-restrictive destination.
package labeled

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"diflabel/audit"
	"diflabel/dclabel"
)

// Task is a task-local mutable cell holding the current label, initially
// public. It is never shared across tasks: each goroutine that wants an
// ambient current label creates its own Task (typically via NewTask or
// diflabel's taskgroup helpers) and threads it explicitly through calls
// that need it. Go has no supported goroutine-local storage, so this
// explicit context-parameter style is how this port realizes the "cooperative
// runtime" guidance from the label algebra's design notes.
type Task struct {
	mu      sync.Mutex
	id      uuid.UUID
	current dclabel.DCLabel
	logger  *zap.Logger
}

// NewTask creates a task with current label public. A nil logger is
// replaced with a no-op logger so audit logging is always optional and
// never nil-panics.
func NewTask(logger *zap.Logger) *Task {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Task{
		id:      uuid.New(),
		current: dclabel.Public(),
		logger:  logger,
	}
}

// ID returns the task's identity, used only for audit correlation and to
// distinguish tasks in tests; it plays no role in the flow relation.
func (t *Task) ID() uuid.UUID {
	return t.id
}

// CurrentLabel returns a snapshot of the task's current label.
func (t *Task) CurrentLabel() dclabel.DCLabel {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Taint monotonically raises the current label by joining in l.
func (t *Task) Taint(l dclabel.DCLabel) {
	t.mu.Lock()
	next := t.current.Join(l)
	t.current = next
	t.mu.Unlock()

	audit.Event{
		TaskID:  t.id,
		Kind:    audit.KindTaint,
		Outcome: audit.OutcomeAllowed,
		Current: next.String(),
		Target:  l.String(),
	}.Log(t.logger)
}

// GuardAlloc fails with a *ViolationError unless the current label can
// flow to l. It does not mutate the current label. The guard's decision is
// computed before anything is logged, so logging can never influence it.
func (t *Task) GuardAlloc(l dclabel.DCLabel) error {
	cur := t.CurrentLabel()
	if !cur.CanFlowTo(l) {
		err := &ViolationError{Current: cur, Target: l}
		audit.Event{
			TaskID:  t.id,
			Kind:    audit.KindGuardAlloc,
			Outcome: audit.OutcomeDenied,
			Current: cur.String(),
			Target:  l.String(),
			Err:     err,
		}.Log(t.logger)
		return err
	}
	audit.Event{
		TaskID:  t.id,
		Kind:    audit.KindGuardAlloc,
		Outcome: audit.OutcomeAllowed,
		Current: cur.String(),
		Target:  l.String(),
	}.Log(t.logger)
	return nil
}

// GuardWrite is GuardAlloc followed by Taint(l) on success.
func (t *Task) GuardWrite(l dclabel.DCLabel) error {
	cur := t.CurrentLabel()
	if err := t.GuardAlloc(l); err != nil {
		audit.Event{
			TaskID:  t.id,
			Kind:    audit.KindGuardWrite,
			Outcome: audit.OutcomeDenied,
			Current: cur.String(),
			Target:  l.String(),
			Err:     err,
		}.Log(t.logger)
		return err
	}
	t.Taint(l)
	audit.Event{
		TaskID:  t.id,
		Kind:    audit.KindGuardWrite,
		Outcome: audit.OutcomeAllowed,
		Current: cur.String(),
		Target:  l.String(),
	}.Log(t.logger)
	return nil
}

// String renders the task for diagnostics: "task <uuid> label=<DCLabel>".
func (t *Task) String() string {
	return "task " + t.id.String() + " label=" + t.CurrentLabel().String()
}
