package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/io/i2c"

	"github.com/plantwall/irrigation-controller/db"
	"github.com/plantwall/irrigation-controller/internal/config"
	"github.com/plantwall/irrigation-controller/internal/controllers/wallcontroller"
	"github.com/plantwall/irrigation-controller/internal/datadog"
	"github.com/plantwall/irrigation-controller/internal/display"
	"github.com/plantwall/irrigation-controller/internal/env"
	"github.com/plantwall/irrigation-controller/internal/gpio"
	"github.com/plantwall/irrigation-controller/internal/logging"
	"github.com/plantwall/irrigation-controller/internal/model"
	"github.com/plantwall/irrigation-controller/internal/notifications"
	"github.com/plantwall/irrigation-controller/internal/rain"
	"github.com/plantwall/irrigation-controller/internal/rtc"
	"github.com/plantwall/irrigation-controller/internal/sensor"
	"github.com/plantwall/irrigation-controller/system/shutdown"
	"github.com/plantwall/irrigation-controller/system/startup"
)

func main() {
	cfg := config.Load()
	env.Cfg = &cfg
	logging.Init(cfg.LogLevel, cfg.LogFile)

	log.Info().
		Str("config_file", cfg.ConfigFile).
		Str("mode", cfg.Mode).
		Msg("Starting irrigation controller")

	gpio.SetSafeMode(cfg.SafeMode)
	if cfg.SafeMode {
		log.Warn().Msg("SAFE MODE ENABLED — relay writes are disabled system-wide")
	}

	pumpPin := model.GPIOPin{Number: *cfg.GPIO.PumpRelayPin, ActiveHigh: cfg.RelayActiveHigh}
	auxPin := model.GPIOPin{Number: *cfg.GPIO.AuxRelayPin, ActiveHigh: cfg.RelayActiveHigh}

	if cfg.Install {
		install(pumpPin, auxPin)
		return
	}

	datadog.InitMetrics()
	notifications.Init()

	bus := &i2c.Devfs{Dev: cfg.I2CDevice}

	// The clock is the sole time source; without it nothing downstream can
	// function. This is the one unrecoverable startup failure.
	clock, err := rtc.Open(bus, cfg.RTCAddr)
	if err != nil {
		notifications.Notify("Irrigation controller", "RTC not responding; controller halted")
		shutdown.ShutdownWithError(err, "RTC not responding")
	}
	defer clock.Close()

	// Safety default: the pump goes off before anything else happens, and we
	// refuse to run if the relay doesn't follow.
	gpio.Deactivate(pumpPin)
	if err := gpio.ValidateStartupPins(pumpPin); err != nil {
		shutdown.ShutdownWithError(err, "Pump relay still energized after force-off")
	}

	envSensor := sensor.New(cfg.SensorDevice)
	rainSensor := rain.New(cfg.RainDevice)

	ctrl := &wallcontroller.Controller{
		State: model.NewSystemState(
			cfg.MorningHour, cfg.MiddayHour, cfg.EveningHour,
			time.Duration(cfg.WateringMinutes)*time.Minute,
			model.Mode(cfg.Mode),
		),
		Clock:   clock,
		Env:     envSensor,
		Rain:    rainSensor,
		PumpPin: pumpPin,
	}

	lcd, err := display.Open(bus, cfg.DisplayAddr)
	if err != nil {
		log.Error().Err(err).Msg("Display not responding; running headless")
	} else {
		defer lcd.Close()
		lcd.Line(0, "  Planting Wall")
		lcd.Line(1, "  watering v2")
		ctrl.LCD = lcd
	}

	dbConn, err := db.Open(cfg.DBFile)
	if err != nil {
		log.Warn().Err(err).Msg("History database unavailable; running without history")
	} else {
		defer dbConn.Close()
		ctrl.DB = dbConn
	}

	notifications.Notify("Irrigation controller", "Controller online")
	ctrl.Run()
}

func install(pins ...model.GPIOPin) {
	if err := startup.WriteBootScript(pins...); err != nil {
		log.Fatal().Err(err).Msg("Failed to write boot script")
	}
	if err := startup.InstallBootService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to install boot service unit")
	}
	exe, err := os.Executable()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve controller executable path")
	}
	if err := startup.InstallControllerService(exe); err != nil {
		log.Fatal().Err(err).Msg("Failed to install controller service unit")
	}
	if err := startup.RunBootScript(); err != nil {
		log.Fatal().Err(err).Msg("Boot script failed")
	}
	log.Info().Msg("Boot script and service units installed")
}
