// Package audit defines the structured event record emitted by a
// labeled.Task on every taint, guard, and violation, grounded on the
// teacher repo's internal/logging.AuditEvent shape: a typed kind, the
// task it happened to, the label(s) involved, and an outcome, rendered
// both as zap structured fields and as a one-line String form.
package audit

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind identifies which runtime operation produced an Event.
type Kind string

const (
	KindTaint      Kind = "taint"
	KindGuardAlloc Kind = "guard_alloc"
	KindGuardWrite Kind = "guard_write"
)

// Outcome is whether the operation that produced the event succeeded or
// was rejected by the flow check.
type Outcome string

const (
	OutcomeAllowed Outcome = "allowed"
	OutcomeDenied  Outcome = "denied"
)

// Event is a structured record of a single Task operation: what kind of
// operation it was, which task it happened on, the current and target
// labels involved, the outcome, and -- for a violation -- the error that
// explains which side of can_flow_to failed.
type Event struct {
	TaskID  uuid.UUID
	Kind    Kind
	Outcome Outcome
	Current string
	Target  string
	Err     error
}

// String renders a one-line human-readable form, in addition to the zap
// structured fields logged alongside it.
func (e Event) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s task=%s current=%s target=%s outcome=%s err=%s",
			e.Kind, e.TaskID, e.Current, e.Target, e.Outcome, e.Err)
	}
	return fmt.Sprintf("%s task=%s current=%s target=%s outcome=%s",
		e.Kind, e.TaskID, e.Current, e.Target, e.Outcome)
}

// Fields renders e as zap structured fields, for use alongside a log
// level chosen by the caller (Debug on success, Error on a violation).
func (e Event) Fields() []zap.Field {
	fields := []zap.Field{
		zap.Stringer("task", e.TaskID),
		zap.String("kind", string(e.Kind)),
		zap.String("outcome", string(e.Outcome)),
		zap.String("current_label", e.Current),
		zap.String("target_label", e.Target),
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}
	return fields
}

// Log writes e to logger at Debug level when allowed and Error level
// when denied. The guard decision that produced e must already be
// final by the time Log is called: logging never feeds back into it.
func (e Event) Log(logger *zap.Logger) {
	if e.Outcome == OutcomeDenied {
		logger.Error(e.String(), e.Fields()...)
		return
	}
	logger.Debug(e.String(), e.Fields()...)
}
