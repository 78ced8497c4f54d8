// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsink

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Cell raster geometry, sized for the 7x13 face with a pixel of breathing
// room per cell.
const (
	cellWidth  = 9
	cellHeight = 15
	bezelPx    = 6
)

// Image rasterizes the visible frame: a backlight colored panel with one
// glyph per cell.
func (d *Dev) Image() image.Image {
	d.mu.Lock()
	rows := d.text()
	lit := d.backlight
	on := d.on
	d.mu.Unlock()

	dc := gg.NewContext(d.cols*cellWidth+2*bezelPx, d.rows*cellHeight+2*bezelPx)
	if lit {
		dc.SetColor(colorBacklit)
	} else {
		dc.SetColor(colorDark)
	}
	dc.Clear()
	if on {
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetRGB(0.08, 0.14, 0.08)
		for r, row := range rows {
			y := float64(bezelPx + r*cellHeight + cellHeight - 3)
			for c := 0; c < len(row); c++ {
				dc.DrawString(row[c:c+1], float64(bezelPx+c*cellWidth), y)
			}
		}
	}
	return dc.Image()
}
