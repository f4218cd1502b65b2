// Package rain reads the rain sensor's analog front end through the kernel
// IIO interface.
package rain

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Device struct {
	dir string
}

func New(dir string) *Device {
	return &Device{dir: dir}
}

// ReadRaw returns the raw ADC value from the sensor board. The value is
// logged each cycle for diagnostics.
func (d *Device) ReadRaw() (int, error) {
	data, err := os.ReadFile(filepath.Join(d.dir, "in_voltage0_raw"))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// Raining always reports false. The board on the wall hasn't been calibrated
// against real rainfall yet, so the raw value is collected but not trusted
// to gate watering.
func (d *Device) Raining() bool {
	return false
}
