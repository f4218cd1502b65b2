// Package engine holds the watering decision logic: window containment
// against the configured schedule, the rain override, and the fixed duty
// cycle used for demonstrations.
package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/plantwall/irrigation-controller/internal/gpio"
	"github.com/plantwall/irrigation-controller/internal/model"
)

var activateRelay = gpio.Activate
var deactivateRelay = gpio.Deactivate

// InWindow reports whether t falls inside the watering window that starts at
// startHour:00:00 on t's own calendar date. The start is inclusive, the end
// exclusive. The window is anchored to t's date: a window whose end crosses
// midnight is never constructed because config validation rejects such
// schedules.
func InWindow(t time.Time, startHour int, d time.Duration) bool {
	start := time.Date(t.Year(), t.Month(), t.Day(), startHour, 0, 0, 0, t.Location())
	end := start.Add(d)
	return !t.Before(start) && t.Before(end)
}

// DecideWatering is true if any one of the three configured windows is open
// at the state's current time.
func DecideWatering(state *model.SystemState) bool {
	return InWindow(state.CurrentTime, state.MorningHour, state.WateringDuration) ||
		InWindow(state.CurrentTime, state.MiddayHour, state.WateringDuration) ||
		InWindow(state.CurrentTime, state.EveningHour, state.WateringDuration)
}

// ManagePump evaluates the schedule and drives the relay. Rain overrides
// every window, unconditionally, every cycle.
func ManagePump(state *model.SystemState, raining bool, pin model.GPIOPin) {
	if raining {
		setPump(state, pin, false)
		return
	}
	setPump(state, pin, DecideWatering(state))
}

// ManagePresentation ignores the schedule entirely and cycles the pump on a
// fixed 10-second duty cycle: on for seconds 0-4, off for 5-9.
func ManagePresentation(state *model.SystemState, pin model.GPIOPin) {
	setPump(state, pin, state.CurrentTime.Second()%10 < 5)
}

// setPump records the decision and drives the relay to match. Restating an
// unchanged output is harmless; the relay is simply commanded to the state
// it is already in.
func setPump(state *model.SystemState, pin model.GPIOPin, on bool) {
	if on != state.PumpOn {
		log.Info().
			Bool("pump_on", on).
			Time("at", state.CurrentTime).
			Msg("Pump state change")
	}
	state.PumpOn = on
	if on {
		activateRelay(pin)
	} else {
		deactivateRelay(pin)
	}
}
