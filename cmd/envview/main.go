// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// envview drives a DHT12 temperature and humidity dashboard on an ILI9341
// TFT panel.
//
// The sensor is always read over I²C. The dashboard output is the SPI
// panel by default; -term renders it to the terminal instead and -http
// serves it as an MJPEG stream, both handy on a machine without the panel
// wired up.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/telik/envview/dht12"
	"github.com/telik/envview/ili9341"
	"github.com/telik/envview/internal/app"
	"github.com/telik/envview/screen2d"
	"github.com/telik/envview/videosink"
)

var (
	i2cName     = flag.String("i2c", "", "I²C bus for the DHT12 (\"\" for the first available)")
	spiName     = flag.String("spi", "", "SPI port for the ILI9341 (\"\" for the first available)")
	dcName      = flag.String("dc", "GPIO25", "data/command pin")
	rstName     = flag.String("rst", "GPIO24", "reset pin (\"\" if tied to the SPI port)")
	ledName     = flag.String("backlight", "GPIO18", "backlight pin (\"\" if hardwired on)")
	httpAddr    = flag.String("http", "", "serve the dashboard as an MJPEG stream on this address instead of the TFT")
	term        = flag.Bool("term", false, "render the dashboard to the terminal instead of the TFT")
	sampleEvery = flag.Duration("sample-every", app.DefaultOpts.SamplePeriod, "sensor poll interval")
	renderEvery = flag.Duration("render-every", app.DefaultOpts.RenderPeriod, "display repaint interval")
	fahrenheit  = flag.Bool("fahrenheit", false, "show the temperature in °F")
)

func pinByName(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no pin named %q", name)
	}
	return p, nil
}

func openPanel() (app.Panel, error) {
	switch {
	case *term:
		return screen2d.New(&screen2d.DefaultOpts)

	case *httpAddr != "":
		d := videosink.New(&videosink.Options{Width: 320, Height: 240})
		go func() {
			log.Printf("render: serving the dashboard on http://%s/", *httpAddr)
			if err := http.ListenAndServe(*httpAddr, d); err != nil {
				log.Fatalf("render: http server: %v", err)
			}
		}()
		return d, nil

	default:
		port, err := spireg.Open(*spiName)
		if err != nil {
			return nil, err
		}
		dc, err := pinByName(*dcName)
		if err != nil {
			return nil, err
		}
		var rst, led gpio.PinOut
		if *rstName != "" {
			if rst, err = pinByName(*rstName); err != nil {
				return nil, err
			}
		}
		if *ledName != "" {
			if led, err = pinByName(*ledName); err != nil {
				return nil, err
			}
		}
		panel, err := ili9341.NewSPI(port, dc, rst, led, &ili9341.DefaultOpts)
		if err != nil {
			return nil, err
		}
		if err := panel.Init(); err != nil {
			return nil, err
		}
		return panel, nil
	}
}

func main() {
	flag.Parse()

	if _, err := host.Init(); err != nil {
		log.Fatalf("host init: %v", err)
	}

	bus, err := i2creg.Open(*i2cName)
	if err != nil {
		log.Fatalf("sensor: opening I²C: %v", err)
	}
	defer bus.Close()

	sensor, err := dht12.NewI2C(bus, dht12.SensorAddress, nil)
	if err != nil {
		log.Fatalf("sensor: %v", err)
	}

	panel, err := openPanel()
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.Opts{
		SamplePeriod: *sampleEvery,
		RenderPeriod: *renderEvery,
		Fahrenheit:   *fahrenheit,
	}
	if err := app.Run(ctx, sensor, panel, &opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("fatal: %v", err)
	}
}
