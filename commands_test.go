// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780i2c

import "testing"

func TestDisplayControlSet(t *testing.T) {
	c := controlDisplayOn
	c = c.set(controlBlinkOn, true)
	if c != controlDisplayOn|controlBlinkOn {
		t.Errorf("set(blink) = %#02x", byte(c))
	}
	c = c.set(controlCursorOn, true)
	c = c.set(controlBlinkOn, false)
	if c != controlDisplayOn|controlCursorOn {
		t.Errorf("clear(blink) disturbed other bits: %#02x", byte(c))
	}
	// Setting an already-set bit is a no-op.
	if c.set(controlCursorOn, true) != c {
		t.Error("set() is not idempotent")
	}
}

func TestFlagOrderIndependence(t *testing.T) {
	// A sequence of single-flag mutations must compose to the same bitmask
	// in any order.
	type mut struct {
		flag displayControl
		on   bool
	}
	muts := []mut{
		{controlDisplayOn, true},
		{controlCursorOn, true},
		{controlBlinkOn, true},
	}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	want := controlDisplayOn | controlCursorOn | controlBlinkOn
	for _, p := range perms {
		var c displayControl
		for _, i := range p {
			c = c.set(muts[i].flag, muts[i].on)
		}
		if c != want {
			t.Errorf("permutation %v = %#02x, want %#02x", p, byte(c), byte(want))
		}
	}
}

func TestEntryModeSet(t *testing.T) {
	e := entryIncrement
	e = e.set(entryShiftDisplay, true)
	if e != entryIncrement|entryShiftDisplay {
		t.Errorf("set(shift) = %#02x", byte(e))
	}
	e = e.set(entryIncrement, false)
	if e != entryShiftDisplay {
		t.Errorf("clear(increment) disturbed other bits: %#02x", byte(e))
	}
}
