// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili9341

import (
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/telik/envview/ili9341/image565"
)

// Commands
const (
	softwareReset             byte = 0x01
	sleepModeOn               byte = 0x10
	sleepModeOff              byte = 0x11
	invertOff                 byte = 0x20
	invertOn                  byte = 0x21
	gammaSet                  byte = 0x26
	displayOff                byte = 0x28
	displayOn                 byte = 0x29
	columnAddressSet          byte = 0x2A
	pageAddressSet            byte = 0x2B
	memoryWrite               byte = 0x2C
	verticalScrollDefine      byte = 0x33
	memoryAccessControl       byte = 0x36
	verticalScrollAddr        byte = 0x37
	idleModeOff               byte = 0x38
	idleModeOn                byte = 0x39
	pixelFormatSet            byte = 0x3A
	setBrightness             byte = 0x51
	contentAdaptiveBrightness byte = 0x55
	frameRateControlNormal    byte = 0xB1
	frameRateControlIdle      byte = 0xB2
	displayFunctionControl    byte = 0xB6
	powerControl1             byte = 0xC0
	powerControl2             byte = 0xC1
	vcomControl1              byte = 0xC5
	vcomControl2              byte = 0xC7
	positiveGammaCorrection   byte = 0xE0
	negativeGammaCorrection   byte = 0xE1
	driverTimingControlA      byte = 0xE8
	driverTimingControlB      byte = 0xEA
	powerOnSequenceControl    byte = 0xED
	enable3Gamma              byte = 0xF2
	pumpRatioControl          byte = 0xF7
)

// Orientation selects which way the controller scans memory out onto the
// glass.
type Orientation bool

const (
	// Landscape scans a 320 wide by 240 tall image.
	Landscape Orientation = false
	// Portrait scans a 240 wide by 320 tall image.
	Portrait Orientation = true
)

// Opts defines the display configuration.
type Opts struct {
	// Width and Height of the panel in the chosen orientation.
	Width  int
	Height int
	// Orientation of the scan order.
	Orientation Orientation
	// Inverted enables the controller's color inversion. Panels that wire
	// the glass for inverted drive, such as the M5Stack one, need it to
	// show colors the right way around.
	Inverted bool
}

// DefaultOpts is the commonly used configuration: 320x240 landscape with
// inversion on.
var DefaultOpts = Opts{
	Width:       320,
	Height:      240,
	Orientation: Landscape,
	Inverted:    true,
}

// madctl returns the memory access control byte for the orientation.
func (o Orientation) madctl() byte {
	if o == Portrait {
		return 0x68
	}
	return 0x08
}

// Dev is an open handle to the display controller.
type Dev struct {
	c         conn.Conn
	dc        gpio.PinOut
	rst       gpio.PinOut
	backlight gpio.PinOut
	opts      Opts
	maxTxSize int
	rect      image.Rectangle
}

// NewSPI returns a Dev that communicates over SPI to an ILI9341 display
// controller.
//
// The dc pin is required for 4-wire mode. rst and backlight may be nil when
// those lines are not under software control.
func NewSPI(p spi.Port, dc, rst, backlight gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, fmt.Errorf("ili9341: dc pin is required")
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	// The controller accepts writes at up to 10MHz.
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return newDev(c, dc, rst, backlight, opts)
}

func newDev(c conn.Conn, dc, rst, backlight gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("ili9341: invalid size %dx%d", opts.Width, opts.Height)
	}
	// Get the maxTxSize from the conn if it implements the conn.Limits
	// interface, otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096 // Use a conservative default.
	}
	return &Dev{
		c:         c,
		dc:        dc,
		rst:       rst,
		backlight: backlight,
		opts:      *opts,
		maxTxSize: maxTxSize,
		rect:      image.Rect(0, 0, opts.Width, opts.Height),
	}, nil
}

// Init resets the controller and runs the power up sequence. The display is
// on but blank afterwards; callers usually clear it before switching the
// backlight on.
func (d *Dev) Init() error {
	eh := errorHandler{d: d}
	if d.rst != nil {
		// Hold reset low for at least 10µs, then wait 5ms before the
		// first command.
		eh.rstOut(gpio.Low)
		eh.wait(1 * time.Millisecond)
		eh.rstOut(gpio.High)
		eh.wait(5 * time.Millisecond)
	}
	initPanel(&eh, &d.opts)
	if eh.err != nil {
		return fmt.Errorf("ili9341: initializing: %w", eh.err)
	}
	return nil
}

// Bounds returns the panel rectangle.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Flush writes the first region.Dx()*region.Dy() pixels of fb to the given
// panel region.
//
// The region must lie within Bounds and must not be larger than fb's
// logical size in either dimension; fb is normally reshaped to exactly the
// region size beforehand. The transfer is all or nothing from the caller's
// point of view: on an error the whole flush counts as failed and should be
// retried.
func (d *Dev) Flush(region image.Rectangle, fb *image565.Buffer) error {
	region = region.Canon()
	if region.Empty() {
		return fmt.Errorf("ili9341: empty region %v", region)
	}
	if !region.In(d.rect) {
		return fmt.Errorf("ili9341: region %v outside display bounds %v", region, d.rect)
	}
	b := fb.Bounds()
	if region.Dx() > b.Dx() || region.Dy() > b.Dy() {
		return fmt.Errorf("ili9341: region %v larger than framebuffer %v", region, b)
	}
	eh := errorHandler{d: d}
	writePixels(&eh, region, fb.Bytes()[:region.Dx()*region.Dy()*2])
	if eh.err != nil {
		return fmt.Errorf("ili9341: writing pixels: %w", eh.err)
	}
	return nil
}

// Backlight switches the backlight LED. It is a no-op when no backlight pin
// was provided.
func (d *Dev) Backlight(on bool) error {
	if d.backlight == nil {
		return nil
	}
	return d.backlight.Out(gpio.Level(on))
}

// Halt turns the display and the backlight off.
func (d *Dev) Halt() error {
	eh := errorHandler{d: d}
	eh.sendCommand(displayOff)
	eh.wait(100 * time.Millisecond)
	if eh.err != nil {
		return fmt.Errorf("ili9341: halting: %w", eh.err)
	}
	return d.Backlight(false)
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("ili9341.Dev{%s, %s, %s}", d.c, d.dc, d.rect.Max)
}

// errorHandler is a controller implementation that stops at the first
// failing bus or pin operation and holds on to its error.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) cTx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, nil)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	eh.dcOut(gpio.Low)
	eh.cTx([]byte{cmd})
}

func (eh *errorHandler) sendData(data []byte) {
	eh.dcOut(gpio.High)
	for len(data) != 0 && eh.err == nil {
		var chunk []byte
		if len(data) > eh.d.maxTxSize {
			chunk, data = data[:eh.d.maxTxSize], data[eh.d.maxTxSize:]
		} else {
			chunk, data = data, nil
		}
		eh.cTx(chunk)
	}
}

func (eh *errorHandler) wait(t time.Duration) {
	if eh.err != nil {
		return
	}
	sleep(t)
}

var sleep = time.Sleep

var _ conn.Resource = &Dev{}
