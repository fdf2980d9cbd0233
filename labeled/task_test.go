package labeled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"diflabel/dclabel"
)

func mustLabel(t *testing.T, secrecy, integrity interface{}) dclabel.DCLabel {
	t.Helper()
	l, err := dclabel.NewAny(secrecy, integrity)
	require.NoError(t, err)
	return l
}

func TestNewTaskStartsPublic(t *testing.T) {
	task := NewTask(nil)
	assert.True(t, task.CurrentLabel().Equal(dclabel.Public()))
}

func TestNewTaskNilLoggerDoesNotPanic(t *testing.T) {
	task := NewTask(nil)
	assert.NotPanics(t, func() { task.Taint(mustLabel(t, "amit", true)) })
}

func TestTaintIsMonotone(t *testing.T) {
	task := NewTask(zaptest.NewLogger(t))
	first := mustLabel(t, "amit", true)
	task.Taint(first)
	after := task.CurrentLabel()
	assert.True(t, first.CanFlowTo(after))

	second := mustLabel(t, "bob", true)
	task.Taint(second)
	final := task.CurrentLabel()
	assert.True(t, after.CanFlowTo(final))
	assert.True(t, second.CanFlowTo(final))
}

func TestGuardAllocDoesNotMutate(t *testing.T) {
	task := NewTask(zaptest.NewLogger(t))
	before := task.CurrentLabel()
	err := task.GuardAlloc(mustLabel(t, "amit", true))
	require.NoError(t, err)
	assert.True(t, task.CurrentLabel().Equal(before))
}

func TestGuardAllocRejectsDowngrade(t *testing.T) {
	task := NewTask(zaptest.NewLogger(t))
	task.Taint(mustLabel(t, "amit", true))

	err := task.GuardAlloc(dclabel.Public())
	require.Error(t, err)

	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.SecrecyViolated())
	assert.False(t, verr.IntegrityViolated())
}

func TestGuardWriteTaintsOnSuccess(t *testing.T) {
	task := NewTask(zaptest.NewLogger(t))
	target := mustLabel(t, "amit", true)
	require.NoError(t, task.GuardWrite(target))
	assert.True(t, target.CanFlowTo(task.CurrentLabel()))
}

func TestGuardWriteLeavesTaskUnchangedOnFailure(t *testing.T) {
	task := NewTask(zaptest.NewLogger(t))
	task.Taint(mustLabel(t, "amit", true))
	before := task.CurrentLabel()

	err := task.GuardWrite(dclabel.Public())
	require.Error(t, err)
	assert.True(t, task.CurrentLabel().Equal(before))
}

func TestTaskStringIncludesIDAndLabel(t *testing.T) {
	task := NewTask(nil)
	s := task.String()
	assert.Contains(t, s, task.ID().String())
	assert.Contains(t, s, task.CurrentLabel().String())
}
