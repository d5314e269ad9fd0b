// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package videosink

import (
	"image"
	"image/color"
	"testing"

	"github.com/telik/envview/ili9341/image565"
)

func TestNewHalt(t *testing.T) {
	d := New(&Options{Width: 100, Height: 100})

	if err := d.Halt(); err != nil {
		t.Errorf("Halt() failed: %v", err)
	}
}

// TestFlush verifies the windowed write contract: the leading
// region.Dx()*region.Dy() pixels of the framebuffer land in the region,
// row by row, regardless of the framebuffer's own width.
func TestFlush(t *testing.T) {
	d := New(&Options{Width: 4, Height: 4})

	fb := image565.New(4, 4)
	colors := []image565.RGB565{
		image565.RGB(0xff, 0x00, 0x00),
		image565.RGB(0x00, 0xff, 0x00),
		image565.RGB(0x00, 0x00, 0xff),
		image565.RGB(0xff, 0xff, 0xff),
	}
	for i, c := range colors {
		fb.SetRGB565(i, 0, c)
	}

	if err := d.Flush(image.Rect(1, 1, 3, 3), fb); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}

	// The first four stored pixels fill the 2x2 region left to right,
	// top to bottom.
	for i, want := range []struct {
		x, y int
	}{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		r16, g16, b16, _ := colors[i].RGBA()
		wantColor := color.RGBA{uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), 0xff}
		if got := d.buffer.RGBAAt(want.x, want.y); got != wantColor {
			t.Errorf("pixel (%d,%d) = %v, want %v", want.x, want.y, got, wantColor)
		}
	}

	// Pixels outside the region keep their initial black.
	if got := d.buffer.RGBAAt(0, 0); got != (color.RGBA{A: 0xff}) {
		t.Errorf("pixel (0,0) = %v, want untouched black", got)
	}
}

func TestFlushValidation(t *testing.T) {
	d := New(&Options{Width: 4, Height: 4})
	fb := image565.New(2, 2)

	for _, region := range []image.Rectangle{
		image.Rect(0, 0, 0, 0),
		image.Rect(0, 0, 5, 2),
		image.Rect(2, 2, 4, 5),
		image.Rect(0, 0, 3, 2), // wider than the framebuffer
		image.Rect(0, 0, 2, 3), // taller than the framebuffer
	} {
		if err := d.Flush(region, fb); err == nil {
			t.Errorf("region %v accepted", region)
		}
	}
}
