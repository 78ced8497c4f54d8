// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780i2c

import "time"

// Protocol timings from the datasheet. The sleeps are best effort minimums;
// sleeping longer is harmless, shorter is not.
const (
	delayEnablePulse = 1 * time.Microsecond    // enable high time >450ns, p.49
	delaySettle      = 44 * time.Microsecond   // instruction settle >40us, p.25
	delayClearHome   = 1670 * time.Microsecond // clear/home settle >1.52ms, p.24
	delayInitFirst   = 4500 * time.Microsecond // after first forcing write >4.1ms, p.46
	delayInitSecond  = 110 * time.Microsecond  // after second forcing write >100us, p.46
)

// nibblePair splits value into the two bus transactions that transfer it,
// high nibble first. The high-then-low order is protocol mandated. flags
// carries RS and the backlight bit but never the enable bit; writeReg owns
// that.
func nibblePair(value, flags byte) [2]byte {
	return [2]byte{value&0xf0 | flags, value<<4 | flags}
}

// writeReg latches one nibble into the controller: the register byte goes
// out with the enable line high, then again with it low, then the driver
// blocks for the instruction settle time. Bus failures propagate as-is; the
// protocol has no acknowledgment, so a retry could only desynchronize the
// nibble phase further.
func (d *Dev) writeReg(reg byte) error {
	if err := d.tx(reg | pinEN); err != nil {
		return err
	}
	d.delay(delayEnablePulse)
	if err := d.tx(reg &^ pinEN); err != nil {
		return err
	}
	d.delay(delaySettle)
	return nil
}

// writeByte transfers a full byte as two nibble transactions.
func (d *Dev) writeByte(value, flags byte) error {
	pair := nibblePair(value, flags)
	if err := d.writeReg(pair[0]); err != nil {
		return err
	}
	return d.writeReg(pair[1])
}

// controlFlags composes the non-data bus bits for a transfer: RS as given,
// plus the backlight line. The backlight has no command of its own; it is
// re-asserted on every transaction.
func (d *Dev) controlFlags(rs byte) byte {
	if d.backlight {
		rs |= pinBL
	}
	return rs
}

func (d *Dev) writeCommand(value byte) error {
	return d.writeByte(value, d.controlFlags(0))
}

func (d *Dev) writeData(value byte) error {
	return d.writeByte(value, d.controlFlags(pinRS))
}

// tx issues a single byte transaction to the expander.
func (d *Dev) tx(reg byte) error {
	return d.d.Tx([]byte{reg}, nil)
}
