package pinctrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePinLine_Output(t *testing.T) {
	state, ok := parsePinLine(" 17: op pn dh | hi // GPIO17 = output")
	assert.True(t, ok)
	assert.Equal(t, 17, state.Pin)
	assert.Equal(t, "op", state.Mode)
	assert.Equal(t, "pn", state.Pull)
	assert.Equal(t, "dh", state.Drive)
	assert.Equal(t, "hi", state.Level)
}

func TestParsePinLine_InputNoDrive(t *testing.T) {
	state, ok := parsePinLine("  4: ip pu | lo // GPIO4 = input")
	assert.True(t, ok)
	assert.Equal(t, 4, state.Pin)
	assert.Equal(t, "ip", state.Mode)
	assert.Equal(t, "pu", state.Pull)
	assert.Equal(t, "", state.Drive)
	assert.Equal(t, "lo", state.Level)
}

func TestParsePinLine_Garbage(t *testing.T) {
	_, ok := parsePinLine("not a pinctrl line")
	assert.False(t, ok)
}
