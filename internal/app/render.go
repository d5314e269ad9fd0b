// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/physic"

	"github.com/telik/envview/ili9341/image565"
)

// Flusher is the windowed write surface of a display driver.
type Flusher interface {
	Bounds() image.Rectangle
	Flush(region image.Rectangle, fb *image565.Buffer) error
}

// Compositor paints the dashboard one horizontal strip at a time through
// a framebuffer that covers a single strip.
type Compositor struct {
	panel      Flusher
	bounds     image.Rectangle
	fb         *image565.Buffer
	fahrenheit bool
}

// NewCompositor returns a compositor for panel. The panel height must be
// a whole multiple of the strip height and taller than a single strip.
func NewCompositor(panel Flusher, fahrenheit bool) (*Compositor, error) {
	b := panel.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("app: invalid panel bounds %v", b)
	}
	if h%stripH != 0 {
		return nil, fmt.Errorf("app: panel height %d is not a multiple of the %d pixel strip height", h, stripH)
	}
	if h == stripH {
		return nil, fmt.Errorf("app: panel height %d equals the strip height; nothing to tile", h)
	}
	return &Compositor{
		panel:      panel,
		bounds:     b,
		fb:         image565.New(w, stripH),
		fahrenheit: fahrenheit,
	}, nil
}

func (co *Compositor) strips() int {
	return co.bounds.Dy() / stripH
}

func (co *Compositor) strip(i int) image.Rectangle {
	return image.Rect(0, i*stripH, co.bounds.Dx(), (i+1)*stripH)
}

// Clear fills the whole panel with c, one strip per flush.
func (co *Compositor) Clear(c image565.RGB565) error {
	co.fb.Fill(c)
	for i := 0; i < co.strips(); i++ {
		if err := co.panel.Flush(co.strip(i), co.fb); err != nil {
			return fmt.Errorf("app: clearing strip %d: %w", i, err)
		}
	}
	return nil
}

// Render repaints the dashboard. ok reports whether s holds a
// measurement; without one the value fields show placeholders.
//
// The pass walks the strips top to bottom and stops at the first flush
// that fails, leaving the remaining strips untouched. The next pass
// starts over from the top strip.
func (co *Compositor) Render(s Sample, ok bool) error {
	items := co.items(s, ok)
	for i := 0; i < co.strips(); i++ {
		strip := co.strip(i)
		if err := co.drawStrip(strip, items); err != nil {
			return err
		}
		if err := co.panel.Flush(strip, co.fb); err != nil {
			return fmt.Errorf("app: flushing strip %d: %w", i, err)
		}
	}
	return nil
}

type fillItem struct {
	r image.Rectangle
	c image565.RGB565
}

type textItem struct {
	left, top int
	s         string
	c         image565.RGB565
}

type passItems struct {
	fills []fillItem
	texts []textItem
}

func (co *Compositor) items(s Sample, ok bool) passItems {
	tempVal, humVal, status := format(s, ok, co.fahrenheit)
	return passItems{
		fills: []fillItem{
			{tempPanel, colorTemp},
			{humPanel, colorHum},
		},
		texts: []textItem{
			{titleLeft, titleTop, titleText, colorTitle},
			{labelLeft, tempLabelTop, "Temperature", colorText},
			{valueLeft, tempLabelTop, tempVal, colorText},
			{labelLeft, humLabelTop, "Humidity", colorText},
			{valueLeft, humLabelTop, humVal, colorText},
			{statusLeft, statusTop, status, colorStatus},
		},
	}
}

// drawStrip redraws the framebuffer for one strip. Fills are clipped to
// the strip; text cells never cross a strip boundary, so a string is
// either drawn whole in its strip or not at all.
func (co *Compositor) drawStrip(strip image.Rectangle, items passItems) error {
	co.fb.Fill(colorBG)
	for _, f := range items.fills {
		r := f.r.Intersect(strip)
		if r.Empty() {
			continue
		}
		if err := co.fb.FillRect(r.Sub(strip.Min), f.c); err != nil {
			return fmt.Errorf("app: filling %v: %w", f.r, err)
		}
	}
	for _, t := range items.texts {
		if !textCell(t.left, t.top, len(t.s)).In(strip) {
			continue
		}
		drawText(co.fb, t.left-strip.Min.X, t.top-strip.Min.Y, t.s, t.c)
	}
	return nil
}

// drawText draws s with the top left corner of its first cell at
// (left, top) in fb coordinates.
func drawText(fb *image565.Buffer, left, top int, s string, c image565.RGB565) {
	d := font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(left, top+textBaseline-face.Descent+1),
	}
	d.DrawString(s)
}

// format renders the value and status strings. Values read "--.-" until a
// first measurement exists. The status line is derived from the sample
// time alone, so repainting an unchanged sample draws identical bytes.
func format(s Sample, ok bool, fahrenheit bool) (tempVal, humVal, status string) {
	if !ok {
		return "--.-", "--.-", "waiting for sensor"
	}
	c := s.Temperature.Celsius()
	if fahrenheit {
		tempVal = fmt.Sprintf("%.1fF", c*9/5+32)
	} else {
		tempVal = fmt.Sprintf("%.1fC", c)
	}
	humVal = fmt.Sprintf("%.1f%%", float64(s.Humidity)/float64(physic.PercentRH))
	status = "updated " + s.At.Format("15:04:05")
	return tempVal, humVal, status
}
