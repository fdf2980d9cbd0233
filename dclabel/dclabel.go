// Package dclabel implements the DCLabel lattice: a pair of conjunctions
// (secrecy, integrity) with the join/meet/can-flow-to operations that make
// it a lattice, per the Lattice contract in this package.
package dclabel

import (
	"fmt"

	"diflabel/conjunction"
)

// DCLabel is a pair (secrecy, integrity) of conjunctions. The secrecy
// component restricts where data may flow; the integrity component
// records which principals vouch for the data. Both components are held
// in LNF.
type DCLabel struct {
	Secrecy   conjunction.Conjunction
	Integrity conjunction.Conjunction
}

var _ Lattice[DCLabel] = DCLabel{}

// New constructs a DCLabel from two conjunctions, canonicalizing both.
func New(secrecy, integrity conjunction.Conjunction) DCLabel {
	return DCLabel{Secrecy: secrecy.ToLNF(), Integrity: integrity.ToLNF()}
}

// NewAny constructs a DCLabel from values convertible to conjunctions: a
// bool, a string (single-principal clause), a principal.Principal, a
// principal.Disjunction, or a conjunction.Conjunction. See
// conjunction.Of.
func NewAny(secrecy, integrity interface{}) (DCLabel, error) {
	s, err := conjunction.Of(secrecy)
	if err != nil {
		return DCLabel{}, fmt.Errorf("dclabel: secrecy: %w", err)
	}
	i, err := conjunction.Of(integrity)
	if err != nil {
		return DCLabel{}, fmt.Errorf("dclabel: integrity: %w", err)
	}
	return New(s, i), nil
}

// Public is the unrestricted, maximally endorsed label: (true, true).
func Public() DCLabel {
	return DCLabel{Secrecy: conjunction.True(), Integrity: conjunction.True()}
}

// Top is the label to which nothing may flow except itself: (false, true).
func Top() DCLabel {
	return DCLabel{Secrecy: conjunction.False(), Integrity: conjunction.True()}
}

// Bottom is the label from which nothing but itself flows out: (true, false).
func Bottom() DCLabel {
	return DCLabel{Secrecy: conjunction.True(), Integrity: conjunction.False()}
}

// Join computes the least upper bound: secrecy composes by AND (a
// destination must satisfy both restrictions), integrity by OR (only the
// weaker set of endorsers survives).
func (l DCLabel) Join(other DCLabel) DCLabel {
	return DCLabel{
		Secrecy:   l.Secrecy.And(other.Secrecy),
		Integrity: l.Integrity.Or(other.Integrity),
	}
}

// Meet computes the greatest lower bound, dual to Join.
func (l DCLabel) Meet(other DCLabel) DCLabel {
	return DCLabel{
		Secrecy:   l.Secrecy.Or(other.Secrecy),
		Integrity: l.Integrity.And(other.Integrity),
	}
}

// CanFlowTo reports whether l can flow to other: other's secrecy must be
// at least as restrictive as l's, and l's integrity must be at least as
// strong as other's.
func (l DCLabel) CanFlowTo(other DCLabel) bool {
	return other.Secrecy.Implies(l.Secrecy) && l.Integrity.Implies(other.Integrity)
}

// Equal reports whether l and other denote the same label.
func (l DCLabel) Equal(other DCLabel) bool {
	return l.Secrecy.Equal(other.Secrecy) && l.Integrity.Equal(other.Integrity)
}

// String renders l for diagnostics as "<secrecy ; integrity>".
func (l DCLabel) String() string {
	return fmt.Sprintf("<%s ; %s>", l.Secrecy.String(), l.Integrity.String())
}

// GoString is an alias of String used by logging call sites that prefer
// the %#v-style verb.
func (l DCLabel) GoString() string {
	return l.String()
}
