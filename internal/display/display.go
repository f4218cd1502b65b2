// Package display drives the 16x2 character LCD behind a PCF8574 I2C
// backpack. The panel is write-only: rows are overwritten in place each
// cycle and nothing is ever read back.
package display

import (
	"fmt"
	"time"

	"golang.org/x/exp/io/i2c"
	"golang.org/x/exp/io/i2c/driver"
)

const (
	Rows = 2
	Cols = 16
)

// PCF8574 bit assignments on the common backpack boards.
const (
	bitRS        = 0x01
	bitEnable    = 0x04
	bitBacklight = 0x08
)

// HD44780 commands.
const (
	cmdClear       = 0x01
	cmdEntryMode   = 0x06 // increment cursor, no shift
	cmdDisplayOn   = 0x0C // display on, cursor off, blink off
	cmdFunctionSet = 0x28 // 4-bit bus, two lines, 5x8 font
	cmdSetDDRAM    = 0x80
)

var rowOffsets = [Rows]byte{0x00, 0x40}

type LCD struct {
	conn *i2c.Device
}

// Open connects to the backpack and runs the HD44780 4-bit init sequence.
func Open(o driver.Opener, addr int) (*LCD, error) {
	conn, err := i2c.Open(o, addr)
	if err != nil {
		return nil, err
	}
	d := &LCD{conn: conn}
	if err := d.init(); err != nil {
		d.Close()
		return nil, fmt.Errorf("cannot init lcd: %w", err)
	}
	return d, nil
}

func (d *LCD) Close() error {
	return d.conn.Close()
}

func (d *LCD) init() error {
	time.Sleep(50 * time.Millisecond)

	// Datasheet reset-by-instruction: three 8-bit function sets, then the
	// switch to 4-bit mode.
	for _, n := range []byte{0x30, 0x30, 0x30, 0x20} {
		if err := d.pulse(n | bitBacklight); err != nil {
			return err
		}
		time.Sleep(5 * time.Millisecond)
	}

	for _, cmd := range []byte{cmdFunctionSet, cmdDisplayOn, cmdClear, cmdEntryMode} {
		if err := d.command(cmd); err != nil {
			return err
		}
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

// Line overwrites one display row. Text longer than 16 columns is truncated,
// shorter text is padded so stale characters never linger.
func (d *LCD) Line(row int, text string) error {
	if row < 0 || row >= Rows {
		return fmt.Errorf("row %d out of range", row)
	}
	if err := d.command(cmdSetDDRAM | rowOffsets[row]); err != nil {
		return err
	}
	for _, ch := range []byte(pad(text)) {
		if err := d.write(ch); err != nil {
			return err
		}
	}
	return nil
}

func (d *LCD) Clear() error {
	if err := d.command(cmdClear); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

func pad(text string) string {
	if len(text) > Cols {
		return text[:Cols]
	}
	return text + spaces[:Cols-len(text)]
}

const spaces = "                "

func (d *LCD) command(value byte) error {
	return d.send(value, 0)
}

func (d *LCD) write(value byte) error {
	return d.send(value, bitRS)
}

// send clocks one byte out in two nibbles, high first.
func (d *LCD) send(value, mode byte) error {
	if err := d.pulse((value & 0xF0) | mode | bitBacklight); err != nil {
		return err
	}
	return d.pulse((value<<4)&0xF0 | mode | bitBacklight)
}

// pulse latches a nibble by strobing the enable line.
func (d *LCD) pulse(data byte) error {
	if err := d.conn.Write([]byte{data | bitEnable}); err != nil {
		return err
	}
	time.Sleep(time.Microsecond)
	if err := d.conn.Write([]byte{data &^ bitEnable}); err != nil {
		return err
	}
	time.Sleep(50 * time.Microsecond)
	return nil
}
