// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"image"

	"golang.org/x/image/font/basicfont"

	"github.com/telik/envview/ili9341/image565"
)

// The dashboard is laid out for a 320x240 landscape panel painted in
// horizontal strips. Positions are in screen coordinates; the renderer
// translates them into the strip being drawn.
const (
	screenW = 320
	screenH = 240
	stripH  = 60
)

// All text uses the fixed 7x13 face. A character cell is cellW wide and
// cellH tall; a string placed at a given top row occupies exactly cellH
// rows, with its baseline sitting on the bottom row of the cell.
var face = basicfont.Face7x13

const (
	cellW = 7
	cellH = 13

	// textBaseline is the baseline offset from the top of a cell.
	textBaseline = cellH - 1
)

const (
	titleText = "DHT12 SENSOR DATA"
	titleTop  = 10
	titleLeft = (screenW - len(titleText)*cellW) / 2

	// The two value panels. Labels and values sit on the panel fill.
	panelLeft = 60
	panelW    = 210
	panelH    = 30

	tempPanelTop = 36
	humPanelTop  = 86

	labelLeft    = 76
	valueLeft    = 220
	tempLabelTop = tempPanelTop + 8
	humLabelTop  = humPanelTop + 8

	statusLeft = 96
	statusTop  = 160
)

var (
	tempPanel = image.Rect(panelLeft, tempPanelTop, panelLeft+panelW, tempPanelTop+panelH)
	humPanel  = image.Rect(panelLeft, humPanelTop, panelLeft+panelW, humPanelTop+panelH)
)

var (
	colorBG     = image565.RGB(0x00, 0x00, 0x00)
	colorTitle  = image565.RGB(0x00, 0x00, 0xff)
	colorTemp   = image565.RGB(0x00, 0xff, 0x00)
	colorHum    = image565.RGB(0xff, 0xff, 0x00)
	colorText   = image565.RGB(0x00, 0x00, 0x00)
	colorStatus = image565.RGB(0xff, 0x00, 0x00)
)

// textCell returns the rectangle covered by a string of n characters
// placed with its top left corner at (left, top).
func textCell(left, top, n int) image.Rectangle {
	return image.Rect(left, top, left+n*cellW, top+cellH)
}
