package sensor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChannel(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0644))
}

func TestRead_Success(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "in_humidityrelative_input", "46500\n")
	writeChannel(t, dir, "in_temp_input", "21300\n")

	r, err := New(dir).Read()
	require.NoError(t, err)
	assert.InDelta(t, 46.5, r.Humidity, 0.001)
	assert.InDelta(t, 21.3, r.TemperatureC, 0.001)
}

func TestRead_MissingChannelFailsWholeReading(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "in_humidityrelative_input", "46500\n")

	_, err := New(dir).Read()
	assert.Error(t, err)
}

func TestRead_NaNFailsWholeReading(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "in_humidityrelative_input", "46500\n")
	writeChannel(t, dir, "in_temp_input", "nan\n")

	_, err := New(dir).Read()
	assert.Error(t, err)
}

func TestRead_MalformedValue(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "in_humidityrelative_input", "not-a-number\n")
	writeChannel(t, dir, "in_temp_input", "21300\n")

	_, err := New(dir).Read()
	assert.Error(t, err)
}
