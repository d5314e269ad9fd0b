// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// envview-mock renders a static preview of the dashboard to a PNG file.
//
// It exists to tune the layout on a workstation: no sensor, no panel, just
// the picture. The preview uses a scalable font and rounded panels, so it
// is a sketch of the dashboard rather than a pixel for pixel copy of the
// 7x13 bitmap rendering on the TFT.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	out  = flag.String("o", "envview.png", "output file")
	temp = flag.Float64("temp", 22.5, "temperature to show, in °C")
	hum  = flag.Float64("hum", 45.0, "relative humidity to show, in percent")
)

const (
	width  = 320
	height = 240
)

func main() {
	flag.Parse()

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parsing font: %v", err)
	}
	titleFace := truetype.NewFace(f, &truetype.Options{Size: 18})
	labelFace := truetype.NewFace(f, &truetype.Options{Size: 14})

	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	// Title, centered like on the panel.
	dc.SetFontFace(titleFace)
	dc.SetRGB(0, 0, 1)
	title := "DHT12 SENSOR DATA"
	tw, _ := dc.MeasureString(title)
	dc.DrawString(title, (width-tw)/2, 26)

	// The two value panels.
	dc.SetRGB(0, 1, 0)
	dc.DrawRoundedRectangle(60, 36, 210, 30, 6)
	dc.Fill()
	dc.SetRGB(1, 1, 0)
	dc.DrawRoundedRectangle(60, 86, 210, 30, 6)
	dc.Fill()

	dc.SetFontFace(labelFace)
	dc.SetRGB(0, 0, 0)
	dc.DrawString("Temperature", 76, 57)
	dc.DrawString(fmt.Sprintf("%.1fC", *temp), 220, 57)
	dc.DrawString("Humidity", 76, 107)
	dc.DrawString(fmt.Sprintf("%.1f%%", *hum), 220, 107)

	dc.SetRGB(1, 0, 0)
	dc.DrawString("updated 15:04:05", 96, 172)

	if err := dc.SavePNG(*out); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	log.Printf("wrote %s", *out)
}
