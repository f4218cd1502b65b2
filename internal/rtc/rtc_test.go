package rtc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/io/i2c/driver"
)

// fakeConn emulates the DS1307 register file behind the i2c driver
// interface. A write transaction sets the register pointer and data; a
// combined write/read transaction reads from the pointer.
type fakeConn struct {
	regs [8]byte
}

func (f *fakeConn) Tx(w, r []byte) error {
	if len(r) > 0 {
		copy(r, f.regs[w[0]:])
		return nil
	}
	copy(f.regs[w[0]:], w[1:])
	return nil
}

func (f *fakeConn) Close() error { return nil }

type fakeOpener struct {
	conn *fakeConn
}

func (f *fakeOpener) Open(addr int, tenbit bool) (driver.Conn, error) {
	return f.conn, nil
}

func TestOpen_SeedsHaltedClock(t *testing.T) {
	conn := &fakeConn{}
	conn.regs[rSecond] = haltBit // oscillator stopped, registers unset

	c, err := Open(&fakeOpener{conn: conn}, 0x68)
	require.NoError(t, err)
	defer c.Close()

	now, err := c.Now()
	require.NoError(t, err)
	assert.Equal(t, seedTime, now)
	assert.Zero(t, conn.regs[rSecond]&haltBit, "halt bit cleared by the seed write")
}

func TestOpen_RunningClockUntouched(t *testing.T) {
	conn := &fakeConn{}
	want := time.Date(2026, time.August, 31, 6, 4, 59, 0, time.UTC)

	c, err := Open(&fakeOpener{conn: conn}, 0x68)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Set(want))

	now, err := c.Now()
	require.NoError(t, err)
	assert.Equal(t, want, now)
}

func TestSet_RoundTrip(t *testing.T) {
	c, err := Open(&fakeOpener{conn: &fakeConn{}}, 0x68)
	require.NoError(t, err)
	defer c.Close()

	for _, want := range []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2033, time.February, 28, 12, 30, 45, 0, time.UTC),
	} {
		require.NoError(t, c.Set(want))
		got, err := c.Now()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSet_RejectsOutOfCentury(t *testing.T) {
	c, err := Open(&fakeOpener{conn: &fakeConn{}}, 0x68)
	require.NoError(t, err)
	defer c.Close()

	assert.Error(t, c.Set(time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Error(t, c.Set(time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBCDConversion(t *testing.T) {
	for dec := 0; dec < 60; dec++ {
		assert.Equal(t, dec, bcdToDec(decToBCD(dec)))
	}
	assert.Equal(t, byte(0x59), decToBCD(59))
	assert.Equal(t, 23, bcdToDec(0x23))
}
