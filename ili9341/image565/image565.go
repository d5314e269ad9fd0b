// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image565 implements 16 bits per pixel RGB565 2D graphics.
//
// It is compatible with package image/draw.
//
// A Buffer is allocated once at its maximum size and can then be reshaped
// to any smaller logical size over the same storage, which is how a partial
// framebuffer covers a display larger than itself one region at a time.
package image565

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// RGB565 implements a 16 bit color with 5 bits of red, 6 bits of green and
// 5 bits of blue, the native pixel format of most small TFT controllers.
type RGB565 uint16

// RGB returns the RGB565 color closest to the 8 bit per channel triplet.
func RGB(r, g, b uint8) RGB565 {
	return RGB565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGBA returns fully opaque channels expanded by bit replication, as
// required by color.Color.
func (c RGB565) RGBA() (uint32, uint32, uint32, uint32) {
	r := uint32(c>>11) & 0x1f
	g := uint32(c>>5) & 0x3f
	b := uint32(c) & 0x1f
	r = r<<3 | r>>2
	g = g<<2 | g>>4
	b = b<<3 | b>>2
	return r<<8 | r, g<<8 | g, b<<8 | b, 0xffff
}

func (c RGB565) String() string {
	return fmt.Sprintf("RGB565(%#04x)", uint16(c))
}

// Model is the color model for RGB565.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if c, ok := c.(RGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Buffer is an RGB565 image with a fixed byte capacity and a reshapeable
// logical size.
//
// Pixels are stored row major, two bytes per pixel, most significant byte
// first, which is the order the ILI9341 expects over the wire.
type Buffer struct {
	// pix is the full backing storage. The logical image is the prefix
	// covering Bounds().
	pix []byte
	w   int
	h   int
}

// New returns an initialized (all black) Buffer of the given logical size.
//
// The allocation is also the capacity: later Reshape calls may pick any
// logical size that fits in w*h pixels.
func New(w, h int) *Buffer {
	return &Buffer{pix: make([]byte, w*h*2), w: w, h: h}
}

// Reshape changes the logical size over the existing storage.
//
// Existing pixel content is reinterpreted, not preserved; callers redraw
// after a reshape. It fails if the new size does not fit the capacity.
func (i *Buffer) Reshape(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("image565: invalid size %dx%d", w, h)
	}
	if n := w * h * 2; n > len(i.pix) {
		return fmt.Errorf("image565: %dx%d needs %d bytes but the buffer holds %d", w, h, n, len(i.pix))
	}
	i.w = w
	i.h = h
	return nil
}

// ColorModel implements image.Image.
func (i *Buffer) ColorModel() color.Model {
	return Model
}

// Bounds implements image.Image. The logical rectangle always has its
// origin at (0, 0).
func (i *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.w, i.h)
}

// At implements image.Image. Out of bounds coordinates read as black.
func (i *Buffer) At(x, y int) color.Color {
	return i.RGB565At(x, y)
}

// RGB565At is the RGB565 version of At.
func (i *Buffer) RGB565At(x, y int) RGB565 {
	if !(image.Point{x, y}.In(i.Bounds())) {
		return 0
	}
	o := (y*i.w + x) * 2
	return RGB565(uint16(i.pix[o])<<8 | uint16(i.pix[o+1]))
}

// Set implements draw.Image. Out of bounds writes are dropped.
func (i *Buffer) Set(x, y int, c color.Color) {
	i.SetRGB565(x, y, convert(c).(RGB565))
}

// SetRGB565 is the RGB565 version of Set.
func (i *Buffer) SetRGB565(x, y int, c RGB565) {
	if !(image.Point{x, y}.In(i.Bounds())) {
		return
	}
	o := (y*i.w + x) * 2
	i.pix[o] = byte(c >> 8)
	i.pix[o+1] = byte(c)
}

// Fill sets every pixel of the logical image to c.
func (i *Buffer) Fill(c RGB565) {
	hi := byte(c >> 8)
	lo := byte(c)
	p := i.pix[:i.w*i.h*2]
	for o := 0; o < len(p); o += 2 {
		p[o] = hi
		p[o+1] = lo
	}
}

// FillRect sets every pixel of r to c.
//
// The rectangle must lie entirely within Bounds; a partial fill is never
// performed.
func (i *Buffer) FillRect(r image.Rectangle, c RGB565) error {
	r = r.Canon()
	if !r.In(i.Bounds()) {
		return fmt.Errorf("image565: rect %v outside buffer bounds %v", r, i.Bounds())
	}
	hi := byte(c >> 8)
	lo := byte(c)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := i.pix[(y*i.w+r.Min.X)*2 : (y*i.w+r.Max.X)*2]
		for o := 0; o < len(row); o += 2 {
			row[o] = hi
			row[o+1] = lo
		}
	}
	return nil
}

// Bytes returns the raw bytes of the logical image, ready for a bulk
// memory write to the display controller.
func (i *Buffer) Bytes() []byte {
	return i.pix[:i.w*i.h*2]
}

// Cap returns the byte capacity, the largest logical image Reshape accepts.
func (i *Buffer) Cap() int {
	return len(i.pix)
}

var _ draw.Image = &Buffer{}
