package labeled

import (
	"fmt"

	"diflabel/dclabel"
)

// ViolationError is returned by GuardAlloc, GuardWrite, and UnlabelWrite
// when the current label cannot flow to the target label. It is fatal to
// the task: per spec, there is no safe way to continue, because any later
// operation would be evaluated under a current label the violating write
// was designed to restrict. Callers must not attempt to recover from it
// and resume under the pre-violation current label; the only sound
// response is to tear the task down.
type ViolationError struct {
	Current dclabel.DCLabel
	Target  dclabel.DCLabel
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("ifc violation: current label %s cannot flow to %s", e.Current, e.Target)
}

// SecrecyViolated reports whether the failure was on the secrecy side of
// can-flow-to (the target's secrecy does not imply the current secrecy).
func (e *ViolationError) SecrecyViolated() bool {
	return !e.Target.Secrecy.Implies(e.Current.Secrecy)
}

// IntegrityViolated reports whether the failure was on the integrity side
// of can-flow-to (the current integrity does not imply the target's).
func (e *ViolationError) IntegrityViolated() bool {
	return !e.Current.Integrity.Implies(e.Target.Integrity)
}
