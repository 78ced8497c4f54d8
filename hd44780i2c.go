// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780i2c controls HD44780 compatible character LCD displays
// wired behind a PCF8574 style I2C I/O expander backpack, the boards
// commonly sold as LCD1602 and LCD2004. The expander multiplexes the
// display's four data lines, register select, read/write, enable strobe and
// backlight onto a single bus byte, so every command or character is
// encoded as two 4-bit transactions with a timed enable pulse.
//
// The driver is write only: the busy flag is never polled and pacing is
// done purely with datasheet delays.
//
// Implements periph.io/x/conn/v3/display.TextDisplay
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
//
// A good description of the backpack wiring can be found here:
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
package hd44780i2c

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

const packageName = "hd44780i2c"

// DefaultAddress is the address of most PCF8574 backpacks with the address
// jumpers open. Boards built on the PCF8574A usually appear at 0x3f. Run
// "i2cdetect -y 1" when in doubt.
const DefaultAddress uint16 = 0x27

// Opts holds the display geometry.
type Opts struct {
	// Rows is the physical row count, 1 to 4. Displays with more than two
	// rows alias the extra rows onto the controller's two row banks; see
	// ddramAddress.
	Rows int
	// Cols is the column count.
	Cols int
	// Lines is the logical line count programmed into the controller's
	// function set register, 1 or 2. Leave 0 to derive it from Rows. Note a
	// four row display still programs as two lines; the physical row count
	// only matters for cursor addressing.
	Lines int
	// Backlight is the initial backlight state.
	Backlight bool
}

// DefaultOpts is the configuration for the common 16x2 backpack.
var DefaultOpts = Opts{Rows: 2, Cols: 16, Backlight: true}

// Dev is a handle to an initialized display.
//
// A Dev serializes its own transactions, but the persistent controller
// state makes interleaving logical operations from multiple goroutines
// pointless; keep one writer per display. Devices at distinct addresses are
// fully independent.
type Dev struct {
	rows  int
	cols  int
	lines int

	mu        sync.Mutex
	d         *i2c.Dev
	delay     func(time.Duration)
	backlight bool
	control   displayControl
	entry     entryMode
}

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// New initializes an HD44780 behind a PCF8574 style backpack at the given
// address and returns a device ready for writing.
//
// Construction runs the full power-on forcing sequence; if any bus write
// fails during it the controller mode is indeterminate and no device is
// returned. Configuration problems are reported before any bus traffic.
func New(bus i2c.Bus, address uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		return nil, wrap(fmt.Errorf("no options specified"))
	}
	if opts.Cols < 1 {
		return nil, wrap(fmt.Errorf("invalid column count %d", opts.Cols))
	}
	if opts.Rows < 1 || opts.Rows > 4 {
		return nil, wrap(fmt.Errorf("invalid row count %d", opts.Rows))
	}
	lines := opts.Lines
	if lines == 0 {
		lines = 2
		if opts.Rows == 1 {
			lines = 1
		}
	}
	if lines != 1 && lines != 2 {
		return nil, wrap(fmt.Errorf("invalid line count %d", opts.Lines))
	}
	dev := &Dev{
		rows:      opts.Rows,
		cols:      opts.Cols,
		lines:     lines,
		d:         &i2c.Dev{Bus: bus, Addr: address},
		delay:     time.Sleep,
		backlight: opts.Backlight,
	}
	if err := dev.init(); err != nil {
		return nil, wrap(err)
	}
	return dev, nil
}

// init runs the power-on sequence documented on p.46 of the datasheet.
//
// The controller wakes up in an unknown interface mode, so three raw 8-bit
// "function set" nibbles force a known state before the single D5 nibble
// commits 4-bit transfers. The order and delays are correctness critical:
// a deviation can leave the controller in 8-bit mode, silently
// misinterpreting everything that follows. The raw forcing writes carry
// neither RS nor the backlight bit.
func (d *Dev) init() error {
	if err := d.writeReg(pinD5 | pinD4); err != nil {
		return err
	}
	d.delay(delayInitFirst)
	if err := d.writeReg(pinD5 | pinD4); err != nil {
		return err
	}
	d.delay(delayInitSecond)
	if err := d.writeReg(pinD5 | pinD4); err != nil {
		return err
	}
	if err := d.writeReg(pinD5); err != nil {
		return err
	}

	// 4-bit bus, 5x8 font, line count. From here on the nibble-pair path is
	// valid.
	function := byte(0)
	if d.lines == 2 {
		function |= function2Line
	}
	if err := d.writeCommand(cmdFunctionSet | function); err != nil {
		return err
	}

	// Seed the two persistent registers: display on with no cursor, then
	// increment-without-shift entry mode. Their in-memory copies track the
	// hardware from here on.
	if err := d.setControl(controlDisplayOn); err != nil {
		return err
	}
	if err := d.clearDisplay(); err != nil {
		return err
	}
	return d.setEntry(entryIncrement)
}

// Write sends p to the display as character data, one byte per cell,
// starting at the current cursor position. There is no line wrap or scroll
// logic; output is purely linear.
func (d *Dev) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, c := range p {
		if err := d.writeData(c); err != nil {
			return i, wrap(err)
		}
	}
	return len(p), nil
}

// WriteString writes text at the current cursor position.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// WriteChar writes a single character cell.
func (d *Dev) WriteChar(c byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(d.writeData(c))
}

// SetCursor moves the cursor to the zero based (row, col) position.
//
// Like the hardware, it does not validate bounds: a position outside the
// configured geometry addresses an unrelated DDRAM cell without any error.
// MoveTo is the checked variant.
func (d *Dev) SetCursor(row, col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(d.writeCommand(cmdSetDDRAMAddr | ddramAddress(row, col, d.cols)))
}

// MoveTo moves the cursor to the one based (row, col) position, validating
// it against the configured geometry.
func (d *Dev) MoveTo(row, col int) error {
	if row < d.MinRow() || row > d.rows || col < d.MinCol() || col > d.cols {
		return fmt.Errorf("%s.MoveTo(%d,%d) value out of range", packageName, row, col)
	}
	return d.SetCursor(row-1, col-1)
}

// Clear erases the display and homes the cursor. Clear and Home rewrite all
// of DDRAM and are the only commands needing the long settle delay.
func (d *Dev) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(d.clearDisplay())
}

func (d *Dev) clearDisplay() error {
	if err := d.writeCommand(cmdClearDisplay); err != nil {
		return err
	}
	d.delay(delayClearHome)
	return nil
}

// Home moves the cursor to (0, 0) and undoes any display shift.
func (d *Dev) Home() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.writeCommand(cmdReturnHome); err != nil {
		return wrap(err)
	}
	d.delay(delayClearHome)
	return nil
}

// ScrollCursor moves the cursor count cells in the given direction without
// touching DDRAM. The protocol has no multi-cell shift command, so one
// command is issued per cell.
func (d *Dev) ScrollCursor(count int, dir display.CursorDirection) error {
	return d.scroll(count, dir, 0)
}

// ScrollDisplay shifts the visible window count columns in the given
// direction, leaving DDRAM and the cursor cell untouched.
func (d *Dev) ScrollDisplay(count int, dir display.CursorDirection) error {
	return d.scroll(count, dir, shiftDisplay)
}

func (d *Dev) scroll(count int, dir display.CursorDirection, target byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var flags byte
	switch dir {
	case display.Backward:
	case display.Forward:
		flags = shiftRight
	default:
		return fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
	}
	for range count {
		if err := d.writeCommand(cmdCursorShift | target | flags); err != nil {
			return wrap(err)
		}
	}
	return nil
}

// Move steps the cursor one cell forward or backward. Up and Down do not
// exist on this controller.
func (d *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Backward, display.Forward:
		return d.ScrollCursor(1, dir)
	default:
		return fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
	}
}

// Return the number of rows the display supports.
func (d *Dev) Rows() int {
	return d.rows
}

// Return the number of columns the display supports.
func (d *Dev) Cols() int {
	return d.cols
}

// Return the min row position.
func (d *Dev) MinRow() int {
	return 1
}

// Return the min column position.
func (d *Dev) MinCol() int {
	return 1
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s_%x Rows: %d Cols: %d", packageName, d.d.Addr, d.rows, d.cols)
}

// Halt quiesces the display: clears it, drops the backlight and turns the
// display off. The protocol has no shutdown command, so this is purely
// cosmetic; the device keeps its state until power-off.
func (d *Dev) Halt() error {
	err := d.Clear()
	d.SetBacklight(false)
	if err2 := d.Display(false); err == nil {
		err = err2
	}
	return err
}

var _ conn.Resource = &Dev{}
var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
