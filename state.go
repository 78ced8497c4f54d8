// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780i2c

import (
	"fmt"

	"periph.io/x/conn/v3/display"
)

// The controller's entry mode and display control registers are write only
// and each hardware command carries the whole register, so every attribute
// toggle below is a read-modify-write against the in-memory copy followed
// by one full-register command. The in-memory copy is the single source of
// truth and stays bit-exact with the last byte written; getters never touch
// the bus.

// setControl issues the display control register and records it on success.
func (d *Dev) setControl(c displayControl) error {
	if err := d.writeCommand(cmdDisplayControl | byte(c)); err != nil {
		return err
	}
	d.control = c
	return nil
}

// setEntry issues the entry mode register and records it on success.
func (d *Dev) setEntry(e entryMode) error {
	if err := d.writeCommand(cmdEntryModeSet | byte(e)); err != nil {
		return err
	}
	d.entry = e
	return nil
}

// Turn the display on / off. The DDRAM content is preserved while off.
func (d *Dev) Display(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(d.setControl(d.control.set(controlDisplayOn, on)))
}

// DisplayOn reports whether the display is on.
func (d *Dev) DisplayOn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.control&controlDisplayOn != 0
}

// SetCursorVisible shows or hides the underline cursor.
func (d *Dev) SetCursorVisible(visible bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(d.setControl(d.control.set(controlCursorOn, visible)))
}

// CursorVisible reports whether the underline cursor is shown.
func (d *Dev) CursorVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.control&controlCursorOn != 0
}

// SetCursorBlink turns blinking of the cursor cell on or off.
func (d *Dev) SetCursorBlink(blink bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(d.setControl(d.control.set(controlBlinkOn, blink)))
}

// CursorBlink reports whether the cursor cell blinks.
func (d *Dev) CursorBlink() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.control&controlBlinkOn != 0
}

// Set the cursor mode. You can pass multiple arguments.
// Cursor(CursorOff, CursorUnderline)
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := d.control &^ (controlCursorOn | controlBlinkOn)
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
		case display.CursorUnderline:
			c |= controlCursorOn
		case display.CursorBlink, display.CursorBlock:
			c |= controlCursorOn | controlBlinkOn
		default:
			return fmt.Errorf("%s: unexpected cursor mode %d", packageName, mode)
		}
	}
	return wrap(d.setControl(c))
}

// AutoScroll sets the entry mode S bit: when enabled, each write shifts the
// whole display instead of moving the cursor, keeping output at a fixed
// column.
func (d *Dev) AutoScroll(enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(d.setEntry(d.entry.set(entryShiftDisplay, enabled)))
}

// AutoScrollOn reports whether writes shift the display.
func (d *Dev) AutoScrollOn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entry&entryShiftDisplay != 0
}

// TextDirection sets the entry mode I/D bit: left to right text when true,
// right to left when false. The two directions are a single hardware bit,
// so they are mutually exclusive by construction.
func (d *Dev) TextDirection(leftToRight bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(d.setEntry(d.entry.set(entryIncrement, leftToRight)))
}

// TextLeftToRight reports whether text currently flows left to right.
func (d *Dev) TextLeftToRight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entry&entryIncrement != 0
}

// SetBacklight flips the backlight flag. The backlight is a bus line rather
// than a controller command, so the change is latched by the next
// transaction instead of immediately.
func (d *Dev) SetBacklight(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.backlight = on
}

// BacklightOn reports the backlight flag.
func (d *Dev) BacklightOn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backlight
}

// Backlight turns the backlight on for any non-zero intensity. These
// backpacks have a single backlight line; there is no dimming.
func (d *Dev) Backlight(intensity display.Intensity) error {
	d.SetBacklight(intensity > 0)
	return nil
}
