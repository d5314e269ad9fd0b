// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili9341

import (
	"bytes"
	"errors"
	"image"
	"testing"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/telik/envview/ili9341/image565"
)

var errBroken = errors.New("broken bus")

// recordConn captures every SPI write and optionally fails from the nth
// transaction on.
type recordConn struct {
	writes [][]byte
	failAt int // 1-based transaction index, 0 never fails
	n      int
}

func (c *recordConn) String() string {
	return "record"
}

func (c *recordConn) Duplex() conn.Duplex {
	return conn.Half
}

func (c *recordConn) Tx(w, r []byte) error {
	c.n++
	if c.failAt != 0 && c.n >= c.failAt {
		return errBroken
	}
	c.writes = append(c.writes, append([]byte(nil), w...))
	return nil
}

func testDev(t *testing.T, c conn.Conn) *Dev {
	t.Helper()
	d, err := newDev(c, &gpiotest.Pin{N: "dc"}, &gpiotest.Pin{N: "rst"}, &gpiotest.Pin{N: "led"}, &DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestNewSPI(t *testing.T) {
	d, err := NewSPI(&spitest.Playback{}, &gpiotest.Pin{N: "dc"}, nil, nil, &DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Bounds(); got != image.Rect(0, 0, 320, 240) {
		t.Fatalf("bounds %v", got)
	}
	if _, err := NewSPI(&spitest.Playback{}, nil, nil, nil, &DefaultOpts); err == nil {
		t.Fatal("expected an error for a missing dc pin")
	}
	if _, err := NewSPI(&spitest.Playback{}, &gpiotest.Pin{N: "dc"}, nil, nil, &Opts{}); err == nil {
		t.Fatal("expected an error for a zero size")
	}
}

func TestFlush(t *testing.T) {
	rec := &recordConn{}
	d := testDev(t, rec)
	d.maxTxSize = 6

	fb := image565.New(4, 2)
	fb.Fill(0x1234)
	fb.SetRGB565(0, 0, 0xf800)
	if err := d.Flush(image.Rect(0, 0, 4, 2), fb); err != nil {
		t.Fatal(err)
	}

	want := [][]byte{
		{columnAddressSet},
		{0x00, 0x00, 0x00, 0x03},
		{pageAddressSet},
		{0x00, 0x00, 0x00, 0x01},
		{memoryWrite},
	}
	if len(rec.writes) < len(want) {
		t.Fatalf("recorded %d transactions", len(rec.writes))
	}
	for i, w := range want {
		if !bytes.Equal(rec.writes[i], w) {
			t.Fatalf("transaction %d is %#v, want %#v", i, rec.writes[i], w)
		}
	}
	// The pixel payload arrives unmodified, split into maxTxSize chunks.
	var payload []byte
	for _, w := range rec.writes[len(want):] {
		if len(w) > d.maxTxSize {
			t.Fatalf("chunk of %d bytes exceeds the transfer limit %d", len(w), d.maxTxSize)
		}
		payload = append(payload, w...)
	}
	if !bytes.Equal(payload, fb.Bytes()) {
		t.Fatalf("payload %#v, want %#v", payload, fb.Bytes())
	}
}

func TestFlushRegion(t *testing.T) {
	rec := &recordConn{}
	d := testDev(t, rec)

	fb := image565.New(4, 2)
	if err := d.Flush(image.Rect(100, 60, 104, 62), fb); err != nil {
		t.Fatal(err)
	}
	if got, want := rec.writes[1], []byte{0x00, 0x64, 0x00, 0x67}; !bytes.Equal(got, want) {
		t.Fatalf("column window %#v, want %#v", got, want)
	}
	if got, want := rec.writes[3], []byte{0x00, 0x3c, 0x00, 0x3d}; !bytes.Equal(got, want) {
		t.Fatalf("page window %#v, want %#v", got, want)
	}
}

func TestFlushValidation(t *testing.T) {
	rec := &recordConn{}
	d := testDev(t, rec)
	fb := image565.New(4, 2)

	for _, r := range []image.Rectangle{
		// Empty, degenerate, outside the panel, taller and wider than
		// the framebuffer.
		{},
		image.Rect(2, 2, 2, 5),
		image.Rect(316, 238, 321, 240),
		image.Rect(0, 0, 4, 3),
		image.Rect(0, 0, 5, 2),
	} {
		if err := d.Flush(r, fb); err == nil {
			t.Errorf("Flush(%v) did not fail", r)
		}
	}
	if len(rec.writes) != 0 {
		t.Fatalf("rejected flushes wrote %d transactions", len(rec.writes))
	}
}

func TestFlushFault(t *testing.T) {
	rec := &recordConn{failAt: 6}
	d := testDev(t, rec)

	fb := image565.New(4, 2)
	err := d.Flush(image.Rect(0, 0, 4, 2), fb)
	if !errors.Is(err, errBroken) {
		t.Fatalf("expected the bus error, got %v", err)
	}
	// The window and write command went out, no pixel data after the
	// fault.
	if len(rec.writes) != 5 {
		t.Fatalf("recorded %d transactions", len(rec.writes))
	}
}

func TestInit(t *testing.T) {
	var sleeps []time.Duration
	sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	defer func() { sleep = time.Sleep }()

	rec := &recordConn{}
	d := testDev(t, rec)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if got, want := rec.writes[0], []byte{softwareReset}; !bytes.Equal(got, want) {
		t.Fatalf("first command %#v, want %#v", got, want)
	}
	// Reset timing plus the three mandatory settle delays.
	want := []time.Duration{
		1 * time.Millisecond,
		5 * time.Millisecond,
		120 * time.Millisecond,
		150 * time.Millisecond,
		100 * time.Millisecond,
	}
	if len(sleeps) != len(want) {
		t.Fatalf("slept %v, want %v", sleeps, want)
	}
	for i := range want {
		if sleeps[i] != want[i] {
			t.Fatalf("slept %v, want %v", sleeps, want)
		}
	}
}

func TestBacklightHalt(t *testing.T) {
	sleep = func(time.Duration) {}
	defer func() { sleep = time.Sleep }()

	rec := &recordConn{}
	led := &gpiotest.Pin{N: "led"}
	d, err := newDev(rec, &gpiotest.Pin{N: "dc"}, nil, led, &DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Backlight(true); err != nil {
		t.Fatal(err)
	}
	if led.L != gpio.High {
		t.Fatal("backlight pin is not high")
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got, want := rec.writes[len(rec.writes)-1], []byte{displayOff}; !bytes.Equal(got, want) {
		t.Fatalf("last command %#v, want %#v", got, want)
	}
	if led.L != gpio.Low {
		t.Fatal("backlight pin is not low after Halt")
	}

	// Without a backlight pin both are no-ops.
	d2, err := newDev(&recordConn{}, &gpiotest.Pin{N: "dc"}, nil, nil, &DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	if err := d2.Backlight(true); err != nil {
		t.Fatal(err)
	}
}

func TestString(t *testing.T) {
	d := testDev(t, &recordConn{})
	if got, want := d.String(), "ili9341.Dev{record, dc(0), (320,240)}"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
