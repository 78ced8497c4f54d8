// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsink emulates an HD44780 character LCD behind a PCF8574 style
// I2C backpack.
//
// The emulator implements i2c.Bus and decodes the raw register stream a
// real backpack would receive: enable pulses, the 4-bit forcing handshake,
// nibble reassembly, and the command set operating on an 80 byte DDRAM
// model. Drivers can run against it unmodified, which makes it useful for
// byte-level protocol tests and for developing display output away from the
// hardware. The current frame can be read back as text, rendered to a
// terminal, rasterized to an image or served over HTTP as a PNG.
package lcdsink

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Backpack register layout, MSB to LSB: D7 D6 D5 D4 BL EN RW RS.
const (
	pinRS byte = 0x01
	pinRW byte = 0x02
	pinEN byte = 0x04
	pinBL byte = 0x08
)

// The controller's DDRAM: two 40 cell row banks at 0x00 and 0x40.
const (
	bankSize  = 0x28
	bank1Addr = 0x40
)

// Dev is an emulated display. The zero value is not usable; call New.
type Dev struct {
	rows int
	cols int

	mu        sync.Mutex
	ddram     [128]byte
	cursor    byte
	shift     int
	mode4     bool
	pending   byte
	hasNibble bool
	nibble    byte
	nibbleRS  bool
	cgram     bool
	backlight bool
	increment bool
	autoShift bool
	on        bool
	cursorOn  bool
	blinkOn   bool
	twoLine   bool
}

// New returns an emulated display with the given geometry. Like the real
// hardware it starts in 8-bit mode and expects a driver to run the 4-bit
// forcing sequence before anything sensible appears.
func New(rows, cols int) *Dev {
	d := &Dev{rows: rows, cols: cols}
	d.reset()
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcdsink(%dx%d)", d.cols, d.rows)
}

// SetSpeed implements i2c.Bus. The emulator has no timing model.
func (d *Dev) SetSpeed(f physic.Frequency) error {
	return nil
}

// Tx implements i2c.Bus. Each write byte is one backpack register
// transaction; reads are rejected, matching a write-only wiring where the
// R/W line is tied low.
func (d *Dev) Tx(addr uint16, w, r []byte) error {
	if len(r) != 0 {
		return fmt.Errorf("lcdsink: read unsupported on a write-only backpack")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, reg := range w {
		d.register(reg)
	}
	return nil
}

// Halt implements conn.Resource: it resets the emulator to its power-on
// state.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
	return nil
}

// reset restores the power-on state: 8-bit interface, increment entry
// mode, everything else off.
func (d *Dev) reset() {
	d.mode4 = false
	d.hasNibble = false
	d.pending = 0
	d.cgram = false
	d.backlight = false
	d.increment = true
	d.autoShift = false
	d.on = false
	d.cursorOn = false
	d.blinkOn = false
	d.twoLine = false
	d.clear()
}

// register consumes one register byte, latching a nibble on each falling
// edge of the enable line.
func (d *Dev) register(reg byte) {
	d.backlight = reg&pinBL != 0
	if reg&pinEN != 0 {
		d.pending = reg
		return
	}
	// Falling edge: the controller samples the lines as the pulse ends, so
	// decode the EN-low byte and require the rest of the register to have
	// been stable across the pulse.
	if d.pending&^pinEN != reg {
		return
	}
	d.latch(reg)
}

// latch consumes one sampled nibble.
func (d *Dev) latch(reg byte) {
	value, rs := reg&0xf0, reg&pinRS != 0
	if !d.mode4 {
		// 8-bit mode: only D4-D7 are wired, so each pulse is a whole
		// instruction with an unreadable low half. The forcing sequence
		// relies on this: function-set nibbles keep arriving until the one
		// with DL clear (0x20) switches the interface width.
		if !rs && value&0xf0 == 0x20 {
			d.mode4 = true
		}
		return
	}
	if !d.hasNibble {
		d.nibble, d.nibbleRS, d.hasNibble = value, rs, true
		return
	}
	d.hasNibble = false
	if rs != d.nibbleRS {
		// Nibble phase desync; drop the pair like real hardware garbage.
		return
	}
	d.execute(d.nibble|value>>4, rs)
}

// execute runs one reassembled byte.
func (d *Dev) execute(value byte, rs bool) {
	if rs {
		d.writeData(value)
		return
	}
	switch {
	case value&0x80 != 0: // set DDRAM address
		d.cursor = value & 0x7f
		d.cgram = false
	case value&0x40 != 0: // set CGRAM address
		d.cgram = true
	case value&0x20 != 0: // function set
		d.twoLine = value&0x08 != 0
		if value&0x10 != 0 {
			d.mode4 = false
		}
	case value&0x10 != 0: // cursor/display shift
		right := value&0x04 != 0
		if value&0x08 != 0 {
			// Shifting the display right moves every character right, so
			// the window over DDRAM moves left.
			if right {
				d.shift--
			} else {
				d.shift++
			}
		} else if right {
			d.cursor = (d.cursor + 1) & 0x7f
		} else {
			d.cursor = (d.cursor - 1) & 0x7f
		}
	case value&0x08 != 0: // display control
		d.on = value&0x04 != 0
		d.cursorOn = value&0x02 != 0
		d.blinkOn = value&0x01 != 0
	case value&0x04 != 0: // entry mode set
		d.increment = value&0x02 != 0
		d.autoShift = value&0x01 != 0
	case value&0x02 != 0: // return home
		d.cursor = 0
		d.shift = 0
	case value&0x01 != 0: // clear display
		d.clear()
	}
}

func (d *Dev) writeData(c byte) {
	if d.cgram {
		// CGRAM programming is accepted and discarded; the emulator has no
		// glyph model.
		return
	}
	d.ddram[d.cursor&0x7f] = c
	if d.increment {
		d.cursor = (d.cursor + 1) & 0x7f
		if d.autoShift {
			d.shift++
		}
	} else {
		d.cursor = (d.cursor - 1) & 0x7f
		if d.autoShift {
			d.shift--
		}
	}
}

func (d *Dev) clear() {
	for i := range d.ddram {
		d.ddram[i] = ' '
	}
	d.cursor = 0
	d.shift = 0
}

// cellAddr maps a visible (row, col) position to the DDRAM cell it shows,
// honoring the bank aliasing of 4 row displays and the current display
// shift.
func (d *Dev) cellAddr(row, col int) byte {
	bank := 0
	if row%2 == 1 {
		bank = bank1Addr
	}
	offset := (row/2)*d.cols + col + d.shift
	offset %= bankSize
	if offset < 0 {
		offset += bankSize
	}
	return byte(bank + offset)
}

// Text returns the currently visible rows, each exactly Cols wide.
func (d *Dev) Text() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text()
}

func (d *Dev) text() []string {
	rows := make([]string, d.rows)
	line := make([]byte, d.cols)
	for r := range rows {
		for c := range line {
			line[c] = d.ddram[d.cellAddr(r, c)]
		}
		rows[r] = string(line)
	}
	return rows
}

// Rows returns the number of visible rows.
func (d *Dev) Rows() int {
	return d.rows
}

// Cols returns the number of visible columns.
func (d *Dev) Cols() int {
	return d.cols
}

// Backlight reports the state of the backlight line as of the last
// transaction.
func (d *Dev) Backlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backlight
}

// DisplayOn reports the decoded display-on flag.
func (d *Dev) DisplayOn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.on
}

// CursorVisible reports the decoded cursor flag.
func (d *Dev) CursorVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursorOn
}

// CursorBlink reports the decoded blink flag.
func (d *Dev) CursorBlink() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blinkOn
}

var _ i2c.Bus = &Dev{}
var _ conn.Resource = &Dev{}
