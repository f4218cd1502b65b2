// Package rtc drives the DS1307 real-time clock on the controller's I2C bus.
// The DS1307 keeps calendar date and time-of-day at one second resolution and
// is the sole time source for the watering schedule.
package rtc

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/io/i2c"
	"golang.org/x/exp/io/i2c/driver"
)

// century holds the current century - the DS1307 does not store it, and we
// do not support dates outside the 21st century.
const century = 2000

type register uint8

const (
	rSecond  register = 0x00
	rMinute  register = 0x01
	rHour    register = 0x02
	rWeekday register = 0x03
	rDay     register = 0x04
	rMonth   register = 0x05
	rYear    register = 0x06
	rControl register = 0x07
)

// CH bit in the seconds register. Set means the oscillator is halted, which
// is how a factory-fresh or battery-drained chip presents.
const haltBit = 0x80

// initialConfig disables the square wave output.
const initialConfig = 0x0

// seedTime is written to a halted clock so the controller starts from a
// known value instead of garbage registers.
var seedTime = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

type Clock struct {
	conn *i2c.Device
}

// Open connects to the clock and makes sure it is running. A failure here is
// the one unrecoverable startup condition for the controller.
func Open(o driver.Opener, addr int) (*Clock, error) {
	conn, err := i2c.Open(o, addr)
	if err != nil {
		return nil, err
	}
	c := &Clock{conn: conn}
	if err := c.setup(); err != nil {
		c.Close()
		return nil, fmt.Errorf("cannot set up rtc: %w", err)
	}
	return c, nil
}

func (c *Clock) Close() error {
	return c.conn.Close()
}

func (c *Clock) setup() error {
	if err := c.writeReg(rControl, []byte{initialConfig}); err != nil {
		return err
	}

	var sec [1]byte
	if err := c.readReg(rSecond, sec[:]); err != nil {
		return err
	}
	if sec[0]&haltBit != 0 {
		// Oscillator halted: the time was never set. Seed it once; clearing
		// the halt bit happens as a side effect of writing the register.
		return c.Set(seedTime)
	}
	return nil
}

// Now returns the clock's current time, accurate to the nearest second.
func (c *Clock) Now() (time.Time, error) {
	var buf [rYear + 1]byte
	if err := c.readReg(rSecond, buf[:]); err != nil {
		return time.Time{}, err
	}
	year := bcdToDec(buf[rYear]) + century
	month := time.Month(bcdToDec(buf[rMonth]))
	day := bcdToDec(buf[rDay])
	hour := bcdToDec(buf[rHour])
	min := bcdToDec(buf[rMinute])
	sec := bcdToDec(buf[rSecond] &^ haltBit)
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC), nil
}

var errYearOutOfRange = errors.New("year out of range")

// Set writes t to the clock. It returns an error if the time is not within
// the 21st century.
func (c *Clock) Set(t time.Time) error {
	t = t.UTC()
	if t.Nanosecond() >= 0.5e9 {
		t = t.Add(time.Second)
	}
	if t.Year() < century || t.Year() >= century+100 {
		return errYearOutOfRange
	}
	buf := [rYear + 1]byte{
		rWeekday: decToBCD(int(t.Weekday()) + 1),
		rYear:    decToBCD(t.Year() - century),
		rMonth:   decToBCD(int(t.Month())),
		rDay:     decToBCD(t.Day()),
		rHour:    decToBCD(t.Hour()),
		rMinute:  decToBCD(t.Minute()),
		rSecond:  decToBCD(t.Second()),
	}
	return c.writeReg(rSecond, buf[:])
}

func (c *Clock) writeReg(r register, buf []byte) error {
	return c.conn.WriteReg(byte(r), buf)
}

func (c *Clock) readReg(r register, buf []byte) error {
	return c.conn.ReadReg(byte(r), buf)
}

func bcdToDec(x byte) int {
	return int(x) - 6*(int(x)>>4)
}

func decToBCD(x int) byte {
	return byte((x / 10 * 16) + (x % 10))
}
