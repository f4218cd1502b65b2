package shutdown

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/plantwall/irrigation-controller/internal/env"
	"github.com/plantwall/irrigation-controller/internal/pinctrl"
)

// Shutdown de-energizes the pump relay and stops the process. Nothing runs
// after this: a controller that cannot trust its peripherals must not keep
// the pump powered.
func Shutdown() {
	if !env.Cfg.SafeMode && env.Cfg.GPIO.PumpRelayPin != nil {
		pin := *env.Cfg.GPIO.PumpRelayPin
		if env.Cfg.RelayActiveHigh {
			pinctrl.SetPin(pin, "op", "pn", "dl")
		} else {
			pinctrl.SetPin(pin, "op", "pn", "dh")
		}
		log.Info().Int("pin", pin).Msg("Pump relay de-energized")
	}
	os.Exit(1)
}

func ShutdownWithError(err error, msg string) {
	log.Error().Err(err).Msg(msg)
	Shutdown()
}
