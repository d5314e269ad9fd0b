// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili9341

import (
	"image"
	"time"
)

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	wait(time.Duration)
}

func initPanel(ctrl controller, opts *Opts) {
	ctrl.sendCommand(softwareReset)
	ctrl.wait(120 * time.Millisecond)

	ctrl.sendCommand(memoryAccessControl)
	ctrl.sendData([]byte{opts.Orientation.madctl()})

	// 16 bits per pixel.
	ctrl.sendCommand(pixelFormatSet)
	ctrl.sendData([]byte{0x55})

	if opts.Inverted {
		ctrl.sendCommand(invertOn)
	} else {
		ctrl.sendCommand(invertOff)
	}

	ctrl.sendCommand(sleepModeOff)
	ctrl.wait(150 * time.Millisecond)

	ctrl.sendCommand(displayOn)
	ctrl.wait(100 * time.Millisecond)
}

// setWindow addresses the region for the next memory write. The controller
// takes inclusive corner coordinates.
func setWindow(ctrl controller, r image.Rectangle) {
	x1 := r.Max.X - 1
	y1 := r.Max.Y - 1
	ctrl.sendCommand(columnAddressSet)
	ctrl.sendData([]byte{
		byte(r.Min.X >> 8), byte(r.Min.X),
		byte(x1 >> 8), byte(x1),
	})
	ctrl.sendCommand(pageAddressSet)
	ctrl.sendData([]byte{
		byte(r.Min.Y >> 8), byte(r.Min.Y),
		byte(y1 >> 8), byte(y1),
	})
}

func writePixels(ctrl controller, r image.Rectangle, pix []byte) {
	setWindow(ctrl, r)
	ctrl.sendCommand(memoryWrite)
	ctrl.sendData(pix)
}
