// Package privilege implements delegated authority over the label
// lattice: principals may grant each other the right to exercise
// privilege on their behalf (speaks_for), and holding a privilege lets a
// task downgrade a label beyond what an unprivileged can-flow-to check
// would allow (spec §4.5).
package privilege

import (
	"errors"
	"fmt"

	"diflabel/conjunction"
	"diflabel/dclabel"
	"diflabel/principal"
)

// ErrDelegationRefused is returned when a delegation grant is rejected,
// for example because the grantor does not actually hold the authority
// it is trying to delegate.
var ErrDelegationRefused = errors.New("privilege: delegation refused")

// Description is the authority a Privilege asserts: the ability to act
// as the named principals for the purposes of flow checks. It is kept
// separate from Privilege itself so the backing speaks_for resolution
// strategy (a static PrincipalSet or a Datalog-backed delegation graph)
// is swappable without touching the label algebra.
type Description interface {
	// SpeaksFor reports whether this description's authority is
	// sufficient to act on behalf of target.
	SpeaksFor(target principal.Principal) bool
}

// PrincipalSet is the simplest Description: a fixed set of principals a
// holder may speak for directly, with no delegation graph behind it.
type PrincipalSet map[principal.Principal]struct{}

// NewPrincipalSet builds a PrincipalSet from the given principals.
func NewPrincipalSet(ps ...principal.Principal) PrincipalSet {
	set := make(PrincipalSet, len(ps))
	for _, p := range ps {
		set[p] = struct{}{}
	}
	return set
}

// SpeaksFor implements Description.
func (s PrincipalSet) SpeaksFor(target principal.Principal) bool {
	_, ok := s[target]
	return ok
}

// Privilege wraps a Description and provides the downgrade operation
// spec §4.5 describes: lowering a label's secrecy, or raising its
// integrity, to whatever extent the held authority covers.
type Privilege struct {
	desc Description
}

// New wraps desc as a Privilege.
func New(desc Description) Privilege {
	return Privilege{desc: desc}
}

// SpeaksFor reports whether the privilege's authority covers p.
func (pv Privilege) SpeaksFor(p principal.Principal) bool {
	if pv.desc == nil {
		return false
	}
	return pv.desc.SpeaksFor(p)
}

// owned reports whether every principal in a disjunction's clause set is
// spoken for by the privilege -- a clause (p1 \/ p2 \/ ...) is
// discharged only once every disputant named in it is covered, since any
// one of them withholding consent is enough to block the release under
// an unprivileged check. The empty (false) clause names nobody and is
// never owned.
func (pv Privilege) owned(d principal.Disjunction) bool {
	if d.IsFalse() {
		return false
	}
	for _, p := range d.Principals() {
		if !pv.SpeaksFor(p) {
			return false
		}
	}
	return true
}

// discharge drops every clause of c that the privilege fully owns,
// implementing the "privilege can vouch away its own restrictions" rule
// central to spec §4.5's downgrade semantics.
func (pv Privilege) discharge(c conjunction.Conjunction) conjunction.Conjunction {
	var kept []principal.Disjunction
	for _, clause := range c.Clauses() {
		if !pv.owned(clause) {
			kept = append(kept, clause)
		}
	}
	return conjunction.FromClauses(kept...)
}

// Downgrade declassifies label: every secrecy clause the privilege fully
// owns is discharged, while integrity is left untouched. It never grants
// more secrecy relaxation than the privilege was actually vouched for.
func (pv Privilege) Downgrade(label dclabel.DCLabel) dclabel.DCLabel {
	return dclabel.New(pv.discharge(label.Secrecy), label.Integrity)
}

// Endorse raises label's integrity with every clause the privilege can
// vouch for, letting a write that an unprivileged GuardWrite would
// reject succeed because the privilege stands in for the missing
// endorsers. owned clauses are folded in with And; clauses the privilege
// cannot fully vouch for are left as real obligations on the writer.
func (pv Privilege) Endorse(label dclabel.DCLabel) dclabel.DCLabel {
	endorsed := label.Integrity
	for p := range pv.vouchableClauseSet() {
		endorsed = endorsed.Add(principal.New(p))
	}
	return dclabel.New(label.Secrecy, endorsed)
}

// vouchableClauseSet exposes the concrete principals a PrincipalSet-backed
// privilege can vouch for, so Endorse can fold them into an integrity
// conjunction. Privileges backed by other Description implementations
// (such as a Datalog-derived speaks_for relation) do not support Endorse
// and return an empty set.
func (pv Privilege) vouchableClauseSet() map[principal.Principal]struct{} {
	if set, ok := pv.desc.(PrincipalSet); ok {
		return set
	}
	return nil
}

// CanFlowToP is the privileged generalization of DCLabel.CanFlowTo: l1
// can flow to l2 under privilege pv whenever l1, once discharged of every
// clause pv can vouch for, can flow to l2 unprivileged. This is never
// less permissive than CanFlowTo and reduces to it when pv speaks for
// nothing.
func CanFlowToP(pv Privilege, l1, l2 dclabel.DCLabel) bool {
	return pv.Downgrade(l1).CanFlowTo(l2)
}

// Delegate derives a privilege scoped to target alone, provided pv
// already speaks for target. The result can only speak for target --
// it never retains the rest of pv's authority -- so delegation always
// produces a privilege no stronger than, and generally weaker than, the
// one it was derived from.
func (pv Privilege) Delegate(target principal.Principal) (Privilege, error) {
	if !pv.SpeaksFor(target) {
		return Privilege{}, fmt.Errorf("%w: cannot speak for %s", ErrDelegationRefused, target)
	}
	return New(NewPrincipalSet(target)), nil
}
