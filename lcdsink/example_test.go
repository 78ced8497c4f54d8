// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsink_test

import (
	"fmt"
	"log"

	"periph.io/x/devices/v3/hd44780i2c"
	"periph.io/x/devices/v3/hd44780i2c/lcdsink"
)

// The emulator stands in for the I²C bus, so the driver runs its normal
// init and write path with no hardware attached.
func Example() {
	sink := lcdsink.New(2, 16)
	dev, err := hd44780i2c.New(sink, hd44780i2c.DefaultAddress, &hd44780i2c.Opts{
		Rows:      2,
		Cols:      16,
		Backlight: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	_, _ = dev.WriteString("Hello")
	_ = dev.SetCursor(1, 0)
	_, _ = dev.WriteString("world")
	for _, row := range sink.Text() {
		fmt.Printf("%q\n", row)
	}
	// Output:
	// "Hello           "
	// "world           "
}
