package dclabel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diflabel/conjunction"
	"diflabel/principal"
)

func mustAny(t *testing.T, secrecy, integrity interface{}) DCLabel {
	t.Helper()
	l, err := NewAny(secrecy, integrity)
	require.NoError(t, err)
	return l
}

// randomLabel builds a DCLabel out of a handful of fixed principal names,
// standing in for the quickcheck-style arbitrary generation the original
// Rust source used (the pack carries no property-testing library, so this
// hand-rolled generator plus a plain loop fills that role; see DESIGN.md).
func randomLabel(r *rand.Rand) DCLabel {
	names := []principal.Principal{"amit", "bob", "carol", "dave"}
	pick := func() conjunction.Conjunction {
		c := conjunction.True()
		clauses := r.Intn(3)
		for i := 0; i < clauses; i++ {
			d := principal.False()
			for j := 0; j <= r.Intn(2); j++ {
				d = d.Add(names[r.Intn(len(names))])
			}
			c = c.Add(d)
		}
		return c
	}
	return New(pick(), pick())
}

const lawTrials = 200

func TestLawReflexivity(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < lawTrials; i++ {
		l := randomLabel(r)
		assert.True(t, l.CanFlowTo(l))
	}
}

func TestLawAntisymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < lawTrials; i++ {
		l1, l2 := randomLabel(r), randomLabel(r)
		if l1.CanFlowTo(l2) && l2.CanFlowTo(l1) {
			assert.True(t, l1.Equal(l2))
		}
	}
}

func TestLawTransitivity(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < lawTrials; i++ {
		l1, l2, l3 := randomLabel(r), randomLabel(r), randomLabel(r)
		if l1.CanFlowTo(l2) && l2.CanFlowTo(l3) {
			assert.True(t, l1.CanFlowTo(l3))
		}
	}
}

func TestLawJoinMeetCommutative(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < lawTrials; i++ {
		l1, l2 := randomLabel(r), randomLabel(r)
		assert.True(t, l1.Join(l2).Equal(l2.Join(l1)))
		assert.True(t, l1.Meet(l2).Equal(l2.Meet(l1)))
	}
}

func TestLawJoinIsLUB(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < lawTrials; i++ {
		l1, l2 := randomLabel(r), randomLabel(r)
		j := l1.Join(l2)
		assert.True(t, l1.CanFlowTo(j))
		assert.True(t, l2.CanFlowTo(j))
	}
}

func TestLawMeetIsGLB(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for i := 0; i < lawTrials; i++ {
		l1, l2 := randomLabel(r), randomLabel(r)
		m := l1.Meet(l2)
		assert.True(t, m.CanFlowTo(l1))
		assert.True(t, m.CanFlowTo(l2))
	}
}

func TestLawAbsorption(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < lawTrials; i++ {
		l1, l2 := randomLabel(r), randomLabel(r)
		assert.True(t, l1.Join(l1.Meet(l2)).Equal(l1))
		assert.True(t, l1.Meet(l1.Join(l2)).Equal(l1))
	}
}

// S1: two-principal join.
func TestScenarioTwoPrincipalJoin(t *testing.T) {
	a := mustAny(t, "amit", true)
	b := mustAny(t, "bob", true)

	joined := a.Join(b)
	assert.Equal(t, `(amit) /\ (bob)`, joined.Secrecy.String())
	assert.Equal(t, "True", joined.Integrity.String())

	assert.True(t, a.CanFlowTo(joined))
	assert.False(t, joined.CanFlowTo(a))
}

// S2: public is bottom-of-secrecy.
func TestScenarioPublicExtremes(t *testing.T) {
	assert.True(t, Public().CanFlowTo(Top()))
	assert.False(t, Top().CanFlowTo(Public()))
	assert.True(t, Bottom().CanFlowTo(Public()))
	assert.False(t, Public().CanFlowTo(Bottom()))
}

func TestNewAnyRejectsBadInput(t *testing.T) {
	_, err := NewAny(42, true)
	require.Error(t, err)
}

func TestStringForm(t *testing.T) {
	l := mustAny(t, "amit", true)
	assert.Equal(t, "<(amit) ; True>", l.String())
}
