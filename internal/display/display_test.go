package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPad_Short(t *testing.T) {
	assert.Equal(t, " 02 Jan 15:04:05", pad(" 02 Jan 15:04:05"))
	assert.Equal(t, "hello           ", pad("hello"))
	assert.Len(t, pad(""), Cols)
}

func TestPad_Truncates(t *testing.T) {
	assert.Equal(t, "H: 46.50% T: 21.", pad("H: 46.50% T: 21.30C"))
}
