// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ili9341 controls a color TFT panel via an ILI9341 controller in
// 4-wire SPI mode.
//
// The driver does windowed writes: the caller composes pixels in an
// image565.Buffer, typically much smaller than the panel, and flushes it to
// one rectangular region at a time. This keeps the memory footprint at a
// fraction of the 150KiB a full 320x240 RGB565 frame would need, at the
// cost of redrawing the screen in several passes.
//
// The D/C pin selects between command and data bytes and is required. The
// RESET and LED (backlight) pins are optional; if RESET is not wired the
// controller must be reset externally before Init.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/ILI9341.pdf
package ili9341
