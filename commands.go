// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780i2c

// Command opcodes (datasheet p.24-27). The opcode is the highest set bit;
// the low bits carry flags or an address.
const (
	cmdClearDisplay   byte = 0x01
	cmdReturnHome     byte = 0x02
	cmdEntryModeSet   byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdCursorShift    byte = 0x10
	cmdFunctionSet    byte = 0x20
	cmdSetCGRAMAddr   byte = 0x40 // CGRAM programming is not implemented.
	cmdSetDDRAMAddr   byte = 0x80
)

// Register layout of the PCF8574 style backpack byte, MSB to LSB:
//
//	D7 | D6 | D5 | D4 | BL | EN | RW | RS
//
// D4-D7 carry one nibble of a command or data byte per transaction.
const (
	pinRS byte = 0x01 // register select: 0 command, 1 character data
	pinRW byte = 0x02 // read/write, always 0 on this write-only driver
	pinEN byte = 0x04 // enable strobe
	pinBL byte = 0x08 // backlight
	pinD4 byte = 0x10
	pinD5 byte = 0x20
	pinD6 byte = 0x40
	pinD7 byte = 0x80
)

// Cursor shift command flags (cmdCursorShift).
const (
	shiftDisplay byte = 0x08 // shift the visible window instead of the cursor
	shiftRight   byte = 0x04
)

// Function set command flags (cmdFunctionSet). 4-bit bus, one line and the
// 5x8 font are the zero values.
const (
	function8Bit  byte = 0x10
	function2Line byte = 0x08
	function5x10  byte = 0x04
)

// entryMode is the controller's persistent entry mode register
// (cmdEntryModeSet payload). The hardware command always carries the whole
// register, so single-bit changes go through set().
type entryMode byte

const (
	// I/D bit: the cursor address increments after each write, giving left
	// to right text.
	entryIncrement entryMode = 0x02
	// S bit: writes shift the whole display instead of moving the cursor.
	entryShiftDisplay entryMode = 0x01
)

// set returns the register with flag set or cleared, leaving the other bits
// alone.
func (e entryMode) set(flag entryMode, on bool) entryMode {
	if on {
		return e | flag
	}
	return e &^ flag
}

// displayControl is the controller's persistent display control register
// (cmdDisplayControl payload).
type displayControl byte

const (
	controlDisplayOn displayControl = 0x04
	controlCursorOn  displayControl = 0x02
	controlBlinkOn   displayControl = 0x01
)

func (c displayControl) set(flag displayControl, on bool) displayControl {
	if on {
		return c | flag
	}
	return c &^ flag
}
