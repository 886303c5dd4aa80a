package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOperation_IsLate(t *testing.T) {
	now := time.Date(2024, 10, 25, 15, 0, 0, 0, time.UTC)

	op := &Operation{Status: StatusReady, ScheduleDate: time.Date(2024, 10, 24, 0, 0, 0, 0, time.UTC)}
	assert.True(t, op.IsLate(now))

	op.ScheduleDate = time.Date(2024, 10, 25, 0, 0, 0, 0, time.UTC)
	assert.False(t, op.IsLate(now), "scheduled today is not late")

	op.ScheduleDate = time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	op.Status = StatusDone
	assert.False(t, op.IsLate(now), "closed operations are never late")
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleManager))
	assert.False(t, IsValidRole("bodeguero"))
}
