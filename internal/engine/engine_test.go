package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plantwall/irrigation-controller/internal/model"
)

var testPin = model.GPIOPin{Number: 17, ActiveHigh: true}

// swapRelay replaces the relay seams with counters for the duration of a test.
func swapRelay(t *testing.T) (activated, deactivated *int) {
	t.Helper()
	origActivate := activateRelay
	origDeactivate := deactivateRelay
	t.Cleanup(func() {
		activateRelay = origActivate
		deactivateRelay = origDeactivate
	})

	var a, d int
	activateRelay = func(model.GPIOPin) { a++ }
	deactivateRelay = func(model.GPIOPin) { d++ }
	return &a, &d
}

func at(hour, min, sec int) time.Time {
	return time.Date(2026, time.August, 31, hour, min, sec, 0, time.UTC)
}

func testState(t time.Time) *model.SystemState {
	st := model.NewSystemState(6, 13, 21, 5*time.Minute, model.ModeScheduled)
	st.CurrentTime = t
	return st
}

func TestInWindow_InclusiveStart(t *testing.T) {
	assert.True(t, InWindow(at(6, 0, 0), 6, 5*time.Minute))
}

func TestInWindow_LastSecondInside(t *testing.T) {
	assert.True(t, InWindow(at(6, 4, 59), 6, 5*time.Minute))
}

func TestInWindow_ExclusiveEnd(t *testing.T) {
	assert.False(t, InWindow(at(6, 5, 0), 6, 5*time.Minute))
}

func TestInWindow_BeforeStart(t *testing.T) {
	assert.False(t, InWindow(at(5, 59, 59), 6, 5*time.Minute))
}

func TestInWindow_AnchoredToOwnDate(t *testing.T) {
	// The window is built from the reading's calendar date, whatever it is.
	d := time.Date(2026, time.February, 1, 13, 2, 30, 0, time.UTC)
	assert.True(t, InWindow(d, 13, 5*time.Minute))
	assert.False(t, InWindow(d.AddDate(0, 0, 1), 13, 2*time.Minute))
}

func TestDecideWatering_AnyWindowOpens(t *testing.T) {
	for _, hour := range []int{6, 13, 21} {
		st := testState(at(hour, 2, 0))
		assert.True(t, DecideWatering(st), "hour %d", hour)
	}
}

func TestDecideWatering_BetweenWindows(t *testing.T) {
	for _, tm := range []time.Time{
		at(0, 0, 0), at(6, 5, 0), at(9, 30, 0), at(13, 5, 0), at(20, 59, 59), at(21, 5, 0), at(23, 59, 59),
	} {
		st := testState(tm)
		assert.False(t, DecideWatering(st), "time %v", tm)
	}
}

func TestManagePump_WindowOpen(t *testing.T) {
	activated, deactivated := swapRelay(t)

	st := testState(at(6, 0, 0))
	ManagePump(st, false, testPin)

	assert.True(t, st.PumpOn)
	assert.Equal(t, 1, *activated)
	assert.Equal(t, 0, *deactivated)
}

func TestManagePump_WindowClosed(t *testing.T) {
	activated, deactivated := swapRelay(t)

	st := testState(at(6, 5, 0))
	ManagePump(st, false, testPin)

	assert.False(t, st.PumpOn)
	assert.Equal(t, 0, *activated)
	assert.Equal(t, 1, *deactivated)
}

func TestManagePump_RainOverridesOpenWindow(t *testing.T) {
	activated, deactivated := swapRelay(t)

	st := testState(at(6, 2, 0))
	st.PumpOn = true
	ManagePump(st, true, testPin)

	assert.False(t, st.PumpOn)
	assert.Equal(t, 0, *activated)
	assert.Equal(t, 1, *deactivated)
}

func TestManagePump_Idempotent(t *testing.T) {
	activated, deactivated := swapRelay(t)

	st := testState(at(6, 2, 0))
	ManagePump(st, false, testPin)
	ManagePump(st, false, testPin)

	// Same decision both times; the relay is just re-commanded on.
	assert.True(t, st.PumpOn)
	assert.Equal(t, 2, *activated)
	assert.Equal(t, 0, *deactivated)
}

func TestManagePresentation_DutyCycle(t *testing.T) {
	activated, deactivated := swapRelay(t)

	for sec := 0; sec < 20; sec++ {
		st := testState(at(10, 0, 0).Add(time.Duration(sec) * time.Second))
		ManagePresentation(st, testPin)

		wantOn := sec%10 < 5
		assert.Equal(t, wantOn, st.PumpOn, "second %d", sec)
	}

	// 0-4 and 10-14 on, 5-9 and 15-19 off
	assert.Equal(t, 10, *activated)
	assert.Equal(t, 10, *deactivated)
}

func TestManagePresentation_IgnoresSchedule(t *testing.T) {
	swapRelay(t)

	// Deep inside the morning watering window, but second 7 of the cycle.
	st := testState(at(6, 2, 7))
	ManagePresentation(st, testPin)
	assert.False(t, st.PumpOn)
}
