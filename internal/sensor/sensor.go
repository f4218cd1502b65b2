// Package sensor reads the wall's humidity/temperature sensor through the
// kernel IIO interface (a DHT22 bound to the dht11 iio driver).
package sensor

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Reading struct {
	Humidity     float64 // percent relative humidity
	TemperatureC float64
}

type Device struct {
	dir string
}

// New points at an IIO device directory, e.g.
// /sys/bus/iio/devices/iio:device0.
func New(dir string) *Device {
	return &Device{dir: dir}
}

// Read takes both channels. A failure of either one fails the whole reading;
// callers keep their previous values and try again next cycle.
func (d *Device) Read() (Reading, error) {
	humidity, err := readMilli(filepath.Join(d.dir, "in_humidityrelative_input"))
	if err != nil {
		return Reading{}, fmt.Errorf("humidity read failed: %w", err)
	}
	temp, err := readMilli(filepath.Join(d.dir, "in_temp_input"))
	if err != nil {
		return Reading{}, fmt.Errorf("temperature read failed: %w", err)
	}
	if math.IsNaN(humidity) || math.IsNaN(temp) {
		return Reading{}, fmt.Errorf("sensor returned NaN (humidity=%v temp=%v)", humidity, temp)
	}
	return Reading{Humidity: humidity, TemperatureC: temp}, nil
}

// readMilli parses an IIO *_input file, which reports in thousandths.
func readMilli(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	milli, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed sensor value in %s: %w", path, err)
	}
	return milli / 1000.0, nil
}
