// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package app

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Sample is one decoded sensor measurement.
type Sample struct {
	Temperature physic.Temperature
	Humidity    physic.RelativeHumidity
	At          time.Time
}

func (s Sample) String() string {
	return fmt.Sprintf("%s %s at %s", s.Temperature, s.Humidity, s.At.Format("15:04:05"))
}
