// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package videosink provides a virtual panel implementing an HTTP request
// handler. Client requests get an initial snapshot of the dashboard and are
// updated further on every flushed strip.
//
// The primary use case is developing the dashboard on a host machine
// without the TFT attached. A device with network connectivity can also use
// this driver to serve a copy of its local panel via a web interface.
//
// The protocol used is "MJPEG" (https://en.wikipedia.org/wiki/Motion_JPEG)
// which is often used by IP cameras. Because of its better suitability for
// computer-drawn graphics the PNG image format is used by default. JPEG as
// a format can be selected via Options.Format or using the "format" URL
// parameter.
package videosink

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"sync"

	"periph.io/x/conn/v3/display"

	"github.com/telik/envview/ili9341/image565"
)

// Options for videosink devices.
type Options struct {
	// Width and height of the image buffer.
	Width, Height int

	// Format specifies the image format to send to clients.
	Format ImageFormat
}

type Display struct {
	defaultFormat ImageFormat

	mu       sync.Mutex
	buffer   *image.RGBA
	clients  map[*client]struct{}
	snapshot map[imageConfig][]byte
}

var _ display.Drawer = (*Display)(nil)
var _ http.Handler = (*Display)(nil)

// New creates a new videosink device instance.
func New(opt *Options) *Display {
	buffer := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))

	// By default the alpha channel is set to full transparency. The following
	// draw operation makes it opaque.
	draw.Draw(buffer, buffer.Bounds(), image.Black, image.Point{}, draw.Src)

	return &Display{
		buffer:        buffer,
		clients:       map[*client]struct{}{},
		snapshot:      map[imageConfig][]byte{},
		defaultFormat: opt.Format,
	}
}

// String returns the name of the device.
func (d *Display) String() string {
	return "VideoSink"
}

// Halt implements conn.Resource and terminates all running client requests
// asynchronously.
func (d *Display) Halt() error {
	d.mu.Lock()
	d.terminateClientsLocked()
	d.mu.Unlock()

	return nil
}

// ColorModel implements display.Drawer.
func (d *Display) ColorModel() color.Model {
	return d.buffer.ColorModel()
}

// Bounds implements display.Drawer.
func (d *Display) Bounds() image.Rectangle {
	return d.buffer.Bounds()
}

// Draw implements display.Drawer.
func (d *Display) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	d.mu.Lock()
	draw.Draw(d.buffer, dstRect, src, srcPts, draw.Src)
	d.bufferChangedLocked()
	d.mu.Unlock()

	return nil
}

// Flush writes the leading region.Dx()*region.Dy() pixels of fb to the
// given region of the virtual panel. It is the same windowed write the
// hardware panel accepts, so the renderer can drive both interchangeably.
func (d *Display) Flush(region image.Rectangle, fb *image565.Buffer) error {
	region = region.Canon()
	if region.Empty() {
		return fmt.Errorf("videosink: empty region %v", region)
	}
	if !region.In(d.buffer.Bounds()) {
		return fmt.Errorf("videosink: region %v outside the screen %v", region, d.buffer.Bounds())
	}
	fbBounds := fb.Bounds()
	if region.Dx() > fbBounds.Dx() || region.Dy() > fbBounds.Dy() {
		return fmt.Errorf("videosink: region %v larger than the framebuffer %v", region, fbBounds)
	}

	src := fb.Bytes()
	d.mu.Lock()
	for y := 0; y < region.Dy(); y++ {
		for x := 0; x < region.Dx(); x++ {
			o := (y*region.Dx() + x) * 2
			r16, g16, b16, _ := image565.RGB565(uint16(src[o])<<8 | uint16(src[o+1])).RGBA()
			d.buffer.SetRGBA(region.Min.X+x, region.Min.Y+y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: 0xff,
			})
		}
	}
	d.bufferChangedLocked()
	d.mu.Unlock()

	return nil
}
