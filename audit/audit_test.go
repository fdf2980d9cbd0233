package audit

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest/observer"

	"go.uber.org/zap"
)

func TestEventStringIncludesErrOnlyWhenPresent(t *testing.T) {
	id := uuid.New()
	ok := Event{TaskID: id, Kind: KindTaint, Outcome: OutcomeAllowed, Current: "public", Target: "public"}
	assert.NotContains(t, ok.String(), "err=")

	denied := Event{TaskID: id, Kind: KindGuardAlloc, Outcome: OutcomeDenied, Current: "amit", Target: "public", Err: errors.New("boom")}
	assert.Contains(t, denied.String(), "err=boom")
}

func TestEventLogLevelMatchesOutcome(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	Event{TaskID: uuid.New(), Kind: KindTaint, Outcome: OutcomeAllowed, Current: "public", Target: "public"}.Log(logger)
	Event{TaskID: uuid.New(), Kind: KindGuardWrite, Outcome: OutcomeDenied, Current: "amit", Target: "public", Err: errors.New("nope")}.Log(logger)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zap.DebugLevel, entries[0].Level)
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	}
}

func TestEventFieldsCarryTaskAndOutcome(t *testing.T) {
	id := uuid.New()
	ev := Event{TaskID: id, Kind: KindGuardAlloc, Outcome: OutcomeAllowed, Current: "public", Target: "amit"}
	fields := ev.Fields()
	assert.Len(t, fields, 5)
}
