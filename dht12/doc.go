// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dht12 controls an AOSONG DHT12 temperature and humidity sensor
// over I²C.
// The sensor is the successor of the one wire DHT11 with a typical accuracy
// of ±5% RH and ±0.5°C and a fixed resolution of a tenth of a unit. It
// updates its measurement registers at most every 2 seconds.
// The dht12.Dev type implements the physic.SenseEnv interface. The
// physic.Env measurement results contain a temperature, pressure and
// humidity value though the pressure is not set.
//
// **Datasheet:** https://www.aosong.com/en/products-62.html
package dht12
