package model

import "time"

type Mode string

const (
	ModeScheduled Mode = "scheduled"
	ModeDemo      Mode = "demo"
)

// SystemState is the single mutable record for the controller process,
// created once at startup and passed by pointer into every operation.
type SystemState struct {
	PumpOn       bool
	CurrentTime  time.Time
	Humidity     float64
	TemperatureC float64

	// Watering window start hours, immutable after startup.
	MorningHour int
	MiddayHour  int
	EveningHour int

	// Shared length of all three watering windows.
	WateringDuration time.Duration

	Mode Mode
}

func NewSystemState(morning, midday, evening int, duration time.Duration, mode Mode) *SystemState {
	return &SystemState{
		MorningHour:      morning,
		MiddayHour:       midday,
		EveningHour:      evening,
		WateringDuration: duration,
		Mode:             mode,
	}
}

type GPIOPin struct {
	Number     int
	ActiveHigh bool
}

type PumpEvent struct {
	At     time.Time
	PumpOn bool
	Reason string
}

type EnvReading struct {
	At           time.Time
	Humidity     float64
	TemperatureC float64
}
