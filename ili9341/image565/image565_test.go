// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package image565

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestRGB(t *testing.T) {
	var tests = []struct {
		r, g, b uint8
		want    RGB565
	}{
		{0x00, 0x00, 0x00, 0x0000},
		{0xff, 0xff, 0xff, 0xffff},
		{0xff, 0x00, 0x00, 0xf800},
		{0x00, 0xff, 0x00, 0x07e0},
		{0x00, 0x00, 0xff, 0x001f},
		{0x08, 0x04, 0x08, 0x0821},
	}
	for _, test := range tests {
		if got := RGB(test.r, test.g, test.b); got != test.want {
			t.Errorf("RGB(%#02x, %#02x, %#02x) = %s, want %s", test.r, test.g, test.b, got, test.want)
		}
	}
}

func TestRGBA(t *testing.T) {
	r, g, b, a := RGB565(0xffff).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Fatalf("white expanded to %#04x %#04x %#04x %#04x", r, g, b, a)
	}
	r, g, b, a = RGB565(0xf800).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Fatalf("red expanded to %#04x %#04x %#04x %#04x", r, g, b, a)
	}
}

func TestModel(t *testing.T) {
	if got := Model.Convert(color.RGBA{R: 0xff, A: 0xff}); got != RGB565(0xf800) {
		t.Fatalf("converted to %v", got)
	}
	// Converting an RGB565 is the identity.
	if got := Model.Convert(RGB565(0x1234)); got != RGB565(0x1234) {
		t.Fatalf("converted to %v", got)
	}
}

func TestBufferSetAt(t *testing.T) {
	b := New(4, 3)
	if got := b.Bounds(); got != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds %v", got)
	}
	b.SetRGB565(2, 1, 0xf800)
	if got := b.RGB565At(2, 1); got != 0xf800 {
		t.Fatalf("read back %s", got)
	}
	b.Set(0, 2, color.RGBA{G: 0xff, A: 0xff})
	if got := b.RGB565At(0, 2); got != 0x07e0 {
		t.Fatalf("read back %s", got)
	}
	// Out of bounds reads are black, writes are dropped.
	if got := b.RGB565At(4, 0); got != 0 {
		t.Fatalf("read back %s", got)
	}
	b.SetRGB565(4, 0, 0xffff)
	b.SetRGB565(-1, -1, 0xffff)
	if got := b.RGB565At(3, 0); got != 0 {
		t.Fatalf("read back %s", got)
	}
}

func TestBufferBytes(t *testing.T) {
	b := New(2, 1)
	b.SetRGB565(0, 0, 0xf800)
	b.SetRGB565(1, 0, 0x07e0)
	// Most significant byte first, the order the panel consumes.
	want := []byte{0xf8, 0x00, 0x07, 0xe0}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("bytes %#v, want %#v", b.Bytes(), want)
	}
}

func TestReshape(t *testing.T) {
	b := New(320, 60)
	if b.Cap() != 320*60*2 {
		t.Fatalf("cap %d", b.Cap())
	}
	// Any size up to and including the full capacity fits.
	if err := b.Reshape(160, 120); err != nil {
		t.Fatal(err)
	}
	if got := b.Bounds(); got != image.Rect(0, 0, 160, 120) {
		t.Fatalf("bounds %v", got)
	}
	if err := b.Reshape(320, 60); err != nil {
		t.Fatal(err)
	}
	// One row over the capacity is rejected and the shape is unchanged.
	if err := b.Reshape(320, 61); err == nil {
		t.Fatal("expected a capacity error")
	}
	if got := b.Bounds(); got != image.Rect(0, 0, 320, 60) {
		t.Fatalf("bounds %v after failed reshape", got)
	}
	if err := b.Reshape(0, 10); err == nil {
		t.Fatal("expected a size error")
	}
	if err := b.Reshape(10, -1); err == nil {
		t.Fatal("expected a size error")
	}
}

func TestFill(t *testing.T) {
	b := New(3, 2)
	b.Fill(0x1234)
	for i, v := range b.Bytes() {
		want := byte(0x12)
		if i%2 == 1 {
			want = 0x34
		}
		if v != want {
			t.Fatalf("byte %d is %#02x, want %#02x", i, v, want)
		}
	}
}

func TestFillRect(t *testing.T) {
	b := New(4, 4)
	if err := b.FillRect(b.Bounds(), 0xffff); err != nil {
		t.Fatal(err)
	}
	if err := b.FillRect(image.Rect(1, 1, 3, 3), 0x0001); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := RGB565(0xffff)
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = 0x0001
			}
			if got := b.RGB565At(x, y); got != want {
				t.Fatalf("pixel (%d, %d) is %s, want %s", x, y, got, want)
			}
		}
	}
	// A rectangle reaching outside the buffer is rejected whole, never
	// truncated.
	if err := b.FillRect(image.Rect(2, 2, 5, 3), 0xf800); err == nil {
		t.Fatal("expected a bounds error")
	}
	if got := b.RGB565At(2, 2); got != 0x0001 {
		t.Fatalf("pixel changed by rejected fill: %s", got)
	}
	if err := b.FillRect(image.Rect(-1, 0, 2, 2), 0xf800); err == nil {
		t.Fatal("expected a bounds error")
	}
}

func TestDrawInterop(t *testing.T) {
	b := New(4, 4)
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	src.Set(1, 1, color.RGBA{B: 0xff, A: 0xff})
	draw.Draw(b, image.Rect(1, 1, 3, 3), src, image.Point{}, draw.Src)
	if got := b.RGB565At(1, 1); got != 0xf800 {
		t.Fatalf("pixel (1, 1) is %s", got)
	}
	if got := b.RGB565At(2, 2); got != 0x001f {
		t.Fatalf("pixel (2, 2) is %s", got)
	}
}
