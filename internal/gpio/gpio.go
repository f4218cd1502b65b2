package gpio

import (
	"fmt"

	"github.com/plantwall/irrigation-controller/internal/model"
	"github.com/plantwall/irrigation-controller/internal/pinctrl"
	"github.com/plantwall/irrigation-controller/system/shutdown"
)

var safeMode bool

func SetSafeMode(enabled bool) {
	safeMode = enabled
}

// ValidateStartupPins refuses to hand control to the loop while the pump
// relay still reads energized. The boot script is supposed to have driven it
// to its safe state before the service starts.
func ValidateStartupPins(pins ...model.GPIOPin) error {
	if safeMode {
		return nil
	}
	for _, pin := range pins {
		level, err := pinctrl.ReadLevel(pin.Number)
		if err != nil {
			return fmt.Errorf("failed to read pin level for GPIO %d: %w", pin.Number, err)
		}
		if pin.ActiveHigh == level {
			return fmt.Errorf("pin %d is energized at startup (expected inactive)", pin.Number)
		}
	}
	return nil
}

func Read(pin model.GPIOPin) bool {
	level, err := pinctrl.ReadLevel(pin.Number)
	if err != nil {
		shutdown.ShutdownWithError(err, fmt.Sprintf("Failed to read pin level for pin %d", pin.Number))
	}
	return level
}

var Activate = func(pin model.GPIOPin) {
	if safeMode {
		return
	}

	drive := "dh"
	if !pin.ActiveHigh {
		drive = "dl"
	}
	if err := pinctrl.SetPin(pin.Number, "op", "pn", drive); err != nil {
		shutdown.ShutdownWithError(err, fmt.Sprintf("Failed to activate pin %d", pin.Number))
	}
}

var Deactivate = func(pin model.GPIOPin) {
	if safeMode {
		return
	}

	drive := "dl"
	if !pin.ActiveHigh {
		drive = "dh"
	}
	if err := pinctrl.SetPin(pin.Number, "op", "pn", drive); err != nil {
		shutdown.ShutdownWithError(err, fmt.Sprintf("Failed to deactivate pin %d", pin.Number))
	}
}

var CurrentlyActive = func(pin model.GPIOPin) bool {
	return pin.ActiveHigh == Read(pin)
}
