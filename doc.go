// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package envview reads a DHT12 temperature and humidity sensor and renders
// the measurements on an ILI9341 TFT panel.
//
// The device drivers live in dht12 and ili9341, the screen composition and
// task loops in internal/app, and host-side stand-ins for the panel in
// videosink (HTTP) and screen2d (terminal). See cmd/envview for the wiring.
package envview
