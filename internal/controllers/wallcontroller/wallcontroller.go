// Package wallcontroller runs the once-per-second control cycle for the
// planting wall: read the clock, render it, drive the pump, read the
// environment sensor, render it, and sample the rain sensor.
package wallcontroller

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/plantwall/irrigation-controller/db"
	"github.com/plantwall/irrigation-controller/internal/datadog"
	"github.com/plantwall/irrigation-controller/internal/engine"
	"github.com/plantwall/irrigation-controller/internal/model"
	"github.com/plantwall/irrigation-controller/internal/rtc"
	"github.com/plantwall/irrigation-controller/internal/sensor"
)

const cycleInterval = time.Second

// TimeSource is the clock peripheral.
type TimeSource interface {
	Now() (time.Time, error)
}

// EnvironmentSensor is the humidity/temperature peripheral.
type EnvironmentSensor interface {
	Read() (sensor.Reading, error)
}

// RainSensor is the rain analog front end.
type RainSensor interface {
	ReadRaw() (int, error)
	Raining() bool
}

// Display is the character LCD. Writes are fire-and-forget.
type Display interface {
	Line(row int, text string) error
}

type Controller struct {
	State   *model.SystemState
	Clock   TimeSource
	LCD     Display
	Env     EnvironmentSensor
	Rain    RainSensor
	DB      *sql.DB
	PumpPin model.GPIOPin

	lastRecorded time.Time
}

// Run executes control cycles forever on the calling goroutine. Everything
// the loop touches is owned by this one goroutine; there is nothing to lock.
func (c *Controller) Run() {
	log.Info().
		Str("mode", string(c.State.Mode)).
		Int("morning_hour", c.State.MorningHour).
		Int("midday_hour", c.State.MiddayHour).
		Int("evening_hour", c.State.EveningHour).
		Dur("watering_duration", c.State.WateringDuration).
		Msg("Starting wall controller loop")

	for {
		c.RunCycle()
		time.Sleep(cycleInterval)
	}
}

// RunCycle performs one pass of the fixed sequence. Peripheral calls have no
// timeouts; a hung device blocks the loop, which is the safest thing a
// single-actuator controller can do.
func (c *Controller) RunCycle() {
	now, err := c.Clock.Now()
	if err != nil {
		log.Error().Err(err).Msg("Clock read failed - skipping cycle")
		return
	}
	c.State.CurrentTime = now

	c.render(0, rtc.DisplayLine(now))
	log.Info().Str("time", rtc.DiagnosticLine(now)).Msg("Cycle time")

	c.managePump()
	c.readEnvironment()
	c.readRain()
}

func (c *Controller) managePump() {
	wasOn := c.State.PumpOn
	reason := "watering-window"

	switch c.State.Mode {
	case model.ModeDemo:
		engine.ManagePresentation(c.State, c.PumpPin)
		reason = "demo-cycle"
	default:
		raining := c.Rain.Raining()
		engine.ManagePump(c.State, raining, c.PumpPin)
		if raining {
			reason = "rain-override"
		}
	}

	datadog.Gauge("wall.pump_on", boolToFloat(c.State.PumpOn), "component:pump")

	if c.DB != nil && wasOn != c.State.PumpOn {
		if err := db.RecordPumpEvent(c.DB, c.State.CurrentTime, c.State.PumpOn, reason); err != nil {
			log.Warn().Err(err).Msg("Failed to record pump event")
		}
	}
}

func (c *Controller) readEnvironment() {
	reading, err := c.Env.Read()
	if err != nil {
		// Previous values stay authoritative; the next cycle is the retry.
		log.Warn().Err(err).Msg("Environment sensor read failed")
		return
	}

	c.State.Humidity = reading.Humidity
	c.State.TemperatureC = reading.TemperatureC

	c.render(1, fmt.Sprintf("H: %.2f%% T: %.2fC", reading.Humidity, reading.TemperatureC))
	log.Info().
		Float64("humidity", reading.Humidity).
		Float64("temperature_c", reading.TemperatureC).
		Msg("Environment reading")

	datadog.Gauge("wall.humidity", reading.Humidity, "component:sensor")
	datadog.Gauge("wall.temperature_c", reading.TemperatureC, "component:sensor")

	if c.DB != nil && c.State.CurrentTime.Sub(c.lastRecorded) >= time.Minute {
		if err := db.RecordReading(c.DB, c.State.CurrentTime, reading.Humidity, reading.TemperatureC); err != nil {
			log.Warn().Err(err).Msg("Failed to record reading")
		} else {
			c.lastRecorded = c.State.CurrentTime
		}
	}
}

func (c *Controller) readRain() {
	raw, err := c.Rain.ReadRaw()
	if err != nil {
		log.Warn().Err(err).Msg("Rain sensor read failed")
		return
	}
	log.Info().Int("rain_raw", raw).Msg("Rain sensor value")
	datadog.Gauge("wall.rain_raw", float64(raw), "component:sensor")
}

func (c *Controller) render(row int, text string) {
	if c.LCD == nil {
		return
	}
	if err := c.LCD.Line(row, text); err != nil {
		log.Warn().Err(err).Int("row", row).Msg("Display write failed")
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
