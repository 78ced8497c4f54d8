// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780i2c

// ddramAddress maps a zero based (row, col) position to a DDRAM address.
//
// The controller has two hardware row banks at 0x00 and 0x40. Displays with
// more than two physical rows alias rows 2 and 3 onto those same banks,
// offset by the column count:
//
//	row 0: 0x00 + col
//	row 1: 0x40 + col
//	row 2: 0x00 + col + cols
//	row 3: 0x40 + col + cols
//
// Neither this function nor the hardware bounds-checks the position; an out
// of range position addresses an unrelated DDRAM cell without any error.
func ddramAddress(row, col, cols int) byte {
	addr := 0x40*(row%2) + col
	if row >= 2 {
		addr += cols
	}
	return byte(addr)
}
