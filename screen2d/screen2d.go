// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D panel emulator that outputs to terminal
// (stdout) using ANSI color codes.
//
// Useful while you are waiting for your ILI9341 panel to come by mail. It
// accepts the same windowed flushes as the real panel and keeps a shadow
// copy of the full screen, so a partial update repaints only the terminal
// rows it touches.
package screen2d

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/telik/envview/ili9341/image565"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width and Height are the emulated panel size in pixels.
	Width  int
	Height int
	// Scale is the square pixel block each terminal character stands
	// for. Default is 8, which renders a 320x240 panel as 40x30
	// characters.
	Scale   int
	Palette *ansi256.Palette

	_ struct{}
}

// DefaultOpts emulates the common 320x240 landscape panel.
var DefaultOpts = Opts{Width: 320, Height: 240}

// Dev is a TFT panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	bounds  image.Rectangle
	scale   int
	palette ansi256.Palette

	// shadow holds the last flushed pixels for the whole screen so any
	// region update can repaint complete terminal rows.
	shadow *image565.Buffer
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// Permits to do local testing of the dashboard without the hardware.
func New(opts *Opts) (*Dev, error) {
	return newDev(colorable.NewColorableStdout(), opts)
}

func newDev(w io.Writer, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("screen2d: invalid size %dx%d", opts.Width, opts.Height)
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 8
	}
	if scale < 1 {
		return nil, fmt.Errorf("screen2d: invalid scale %d", scale)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{
		w:       w,
		bounds:  image.Rect(0, 0, opts.Width, opts.Height),
		scale:   scale,
		palette: *p,
		shadow:  image565.New(opts.Width, opts.Height),
	}, nil
}

func (d *Dev) String() string {
	return "Screen2D"
}

// Halt implements conn.Resource.
//
// It parks the cursor under the drawing area and resets the colors so the
// shell prompt is not corrupted.
func (d *Dev) Halt() error {
	_, err := fmt.Fprintf(d.w, "\033[%d;1H\033[0m\n", d.rows()+1)
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image565.Model
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.bounds
}

// Flush writes the leading region.Dx()*region.Dy() pixels of fb to the
// given screen region, exactly like the hardware panel does.
func (d *Dev) Flush(region image.Rectangle, fb *image565.Buffer) error {
	region = region.Canon()
	if region.Empty() {
		return fmt.Errorf("screen2d: empty region %v", region)
	}
	if !region.In(d.bounds) {
		return fmt.Errorf("screen2d: region %v outside the screen %v", region, d.bounds)
	}
	fbBounds := fb.Bounds()
	if region.Dx() > fbBounds.Dx() || region.Dy() > fbBounds.Dy() {
		return fmt.Errorf("screen2d: region %v larger than the framebuffer %v", region, fbBounds)
	}
	src := fb.Bytes()
	dst := d.shadow.Bytes()
	rowLen := region.Dx() * 2
	stride := d.bounds.Dx() * 2
	for y := 0; y < region.Dy(); y++ {
		o := (region.Min.Y+y)*stride + region.Min.X*2
		copy(dst[o:o+rowLen], src[y*rowLen:(y+1)*rowLen])
	}
	return d.repaint(region)
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.bounds)
	if r.Empty() {
		return nil
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.shadow.Set(x, y, src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y))
		}
	}
	return d.repaint(r)
}

func (d *Dev) rows() int {
	return (d.bounds.Dy() + d.scale - 1) / d.scale
}

func (d *Dev) cols() int {
	return (d.bounds.Dx() + d.scale - 1) / d.scale
}

// repaint redraws every terminal row the region touches. Each character
// shows the center pixel of the scale x scale block it stands for.
func (d *Dev) repaint(region image.Rectangle) error {
	// This code is designed to minimize the amount of memory allocated
	// per call.
	d.buf.Reset()
	row0 := region.Min.Y / d.scale
	row1 := (region.Max.Y + d.scale - 1) / d.scale
	cols := d.cols()
	for row := row0; row < row1; row++ {
		fmt.Fprintf(&d.buf, "\033[%d;1H", row+1)
		py := row*d.scale + d.scale/2
		if py >= d.bounds.Max.Y {
			py = d.bounds.Max.Y - 1
		}
		for col := 0; col < cols; col++ {
			px := col*d.scale + d.scale/2
			if px >= d.bounds.Max.X {
				px = d.bounds.Max.X - 1
			}
			r16, g16, b16, _ := d.shadow.RGB565At(px, py).RGBA()
			c := color.NRGBA{byte(r16 >> 8), byte(g16 >> 8), byte(b16 >> 8), 255}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
