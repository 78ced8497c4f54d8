// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsink

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Bezel colors used by the terminal and image renderers. The green is the
// usual yellow-green STN backlight tint.
var (
	colorBacklit = color.NRGBA{0x7d, 0xc2, 0x42, 0xff}
	colorDark    = color.NRGBA{0x30, 0x38, 0x30, 0xff}
)

// RenderTo writes the visible frame to w as text surrounded by a bezel of
// ANSI color blocks reflecting the backlight state.
func (d *Dev) RenderTo(w io.Writer) error {
	d.mu.Lock()
	rows := d.text()
	lit := d.backlight
	d.mu.Unlock()

	bezel := ansi256.Default.Block(colorDark)
	if lit {
		bezel = ansi256.Default.Block(colorBacklit)
	}

	var buf bytes.Buffer
	for i := 0; i < d.cols+2; i++ {
		buf.WriteString(bezel)
	}
	buf.WriteString("\033[0m\n")
	for _, row := range rows {
		buf.WriteString(bezel)
		buf.WriteString("\033[0m")
		buf.WriteString(row)
		buf.WriteString(bezel)
		buf.WriteString("\033[0m\n")
	}
	for i := 0; i < d.cols+2; i++ {
		buf.WriteString(bezel)
	}
	buf.WriteString("\033[0m\n")
	_, err := buf.WriteTo(w)
	return err
}

// Render writes the visible frame to stdout, translating the ANSI escapes
// for the platform.
func (d *Dev) Render() error {
	return d.RenderTo(colorable.NewColorableStdout())
}
