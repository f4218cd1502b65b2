package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int {
	return &n
}

func validConfig() Config {
	return Config{
		MorningHour:     6,
		MiddayHour:      13,
		EveningHour:     21,
		WateringMinutes: 5,
		Mode:            "scheduled",
		GPIO: GPIO{
			PumpRelayPin: intPtr(17),
			AuxRelayPin:  intPtr(27),
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	assert.NotPanics(t, func() { cfg.validate() })
}

func TestValidate_MissingPin(t *testing.T) {
	cfg := validConfig()
	cfg.GPIO.PumpRelayPin = nil
	assert.Panics(t, func() { cfg.validate() })
}

func TestValidate_ConflictingPins(t *testing.T) {
	cfg := validConfig()
	cfg.GPIO.AuxRelayPin = intPtr(17)
	assert.Panics(t, func() { cfg.validate() })
}

func TestValidate_HourOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.EveningHour = 24
	assert.Panics(t, func() { cfg.validate() })

	cfg = validConfig()
	cfg.MorningHour = -1
	assert.Panics(t, func() { cfg.validate() })
}

func TestValidate_WindowCrossingMidnight(t *testing.T) {
	cfg := validConfig()
	cfg.EveningHour = 23
	cfg.WateringMinutes = 120
	assert.Panics(t, func() { cfg.validate() })
}

func TestValidate_WindowEndingExactlyAtMidnight(t *testing.T) {
	cfg := validConfig()
	cfg.EveningHour = 23
	cfg.WateringMinutes = 60
	assert.NotPanics(t, func() { cfg.validate() })
}

func TestValidate_BadMode(t *testing.T) {
	cfg := validConfig()
	cfg.Mode = "presentation"
	assert.Panics(t, func() { cfg.validate() })
}

func TestValidate_ZeroDuration(t *testing.T) {
	cfg := validConfig()
	cfg.WateringMinutes = 0
	assert.Panics(t, func() { cfg.validate() })
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{GPIO: GPIO{PumpRelayPin: intPtr(17), AuxRelayPin: intPtr(27)}}
	applyDefaults(&cfg)

	assert.Equal(t, 6, cfg.MorningHour)
	assert.Equal(t, 13, cfg.MiddayHour)
	assert.Equal(t, 21, cfg.EveningHour)
	assert.Equal(t, 5, cfg.WateringMinutes)
	assert.Equal(t, "scheduled", cfg.Mode)
	assert.Equal(t, "/dev/i2c-1", cfg.I2CDevice)
	assert.Equal(t, 0x68, cfg.RTCAddr)
	assert.Equal(t, 0x27, cfg.DisplayAddr)
}
