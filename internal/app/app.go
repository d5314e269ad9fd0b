// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package app connects a DHT12 class sensor to a strip rendered dashboard.
//
// Two loops run concurrently: the acquisition loop polls the sensor and
// publishes each good measurement to a single slot, the render loop reads
// the slot and repaints the display. The slot keeps only the newest
// sample, so a slow display never backs up the sensor and a slow sensor
// simply leaves the previous reading on screen.
package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Panel is a display the dashboard can drive.
type Panel interface {
	Flusher
	Halt() error
}

// backlighter is implemented by panels with a controllable backlight.
// The backlight stays off until the first clear so the boot garbage in
// the display RAM is never visible.
type backlighter interface {
	Backlight(on bool) error
}

// Opts holds the loop timing.
type Opts struct {
	// SamplePeriod is the sensor poll interval. The DHT12 refreshes its
	// registers every 2 seconds, polling faster returns stale data.
	SamplePeriod time.Duration
	// RenderPeriod is the display repaint interval. Unchanged samples
	// are skipped, so a short period only costs bus bandwidth after a
	// failed pass.
	RenderPeriod time.Duration
	// Fahrenheit selects °F for the temperature value.
	Fahrenheit bool
}

// DefaultOpts is the sane default configuration.
var DefaultOpts = Opts{
	SamplePeriod: 2 * time.Second,
	RenderPeriod: time.Second,
}

// Run drives the dashboard until ctx is cancelled, then halts both
// devices. The first paint happens before the loops start so the screen
// never shows uninitialized memory.
func Run(ctx context.Context, sensor physic.SenseEnv, panel Panel, opts *Opts) error {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.SamplePeriod <= 0 || opts.RenderPeriod <= 0 {
		return fmt.Errorf("app: invalid periods %s/%s", opts.SamplePeriod, opts.RenderPeriod)
	}
	co, err := NewCompositor(panel, opts.Fahrenheit)
	if err != nil {
		return err
	}

	if err := co.Clear(colorBG); err != nil {
		return err
	}
	if bl, ok := panel.(backlighter); ok {
		if err := bl.Backlight(true); err != nil {
			return err
		}
	}

	var latest slot
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		acquireLoop(ctx, sensor, &latest, opts.SamplePeriod)
	}()
	go func() {
		defer wg.Done()
		renderLoop(ctx, co, &latest, opts.RenderPeriod)
	}()
	wg.Wait()

	if err := sensor.Halt(); err != nil {
		log.Printf("sensor: halt: %v", err)
	}
	if err := panel.Halt(); err != nil {
		log.Printf("render: halt: %v", err)
	}
	return ctx.Err()
}

// acquireLoop polls the sensor and publishes every good measurement.
// A failed read is logged and the previous sample stays published.
func acquireLoop(ctx context.Context, sensor physic.SenseEnv, latest *slot, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		var e physic.Env
		if err := sensor.Sense(&e); err != nil {
			log.Printf("sensor: %v", err)
		} else {
			latest.Store(Sample{
				Temperature: e.Temperature,
				Humidity:    e.Humidity,
				At:          time.Now(),
			})
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// renderLoop repaints on every tick that has something new to show. A
// pass that fails leaves the screen partially stale; the next tick
// repaints everything from the top strip.
func renderLoop(ctx context.Context, co *Compositor, latest *slot, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()
	var lastSeq uint64
	painted := false
	for {
		s, seq := latest.Load()
		if !painted || seq != lastSeq {
			if err := co.Render(s, seq > 0); err != nil {
				log.Printf("render: %v", err)
				painted = false
			} else {
				lastSeq = seq
				painted = true
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
