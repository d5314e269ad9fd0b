// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht12

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/telik/envview/common"
)

const (
	// SensorAddress is the fixed I²C address of the DHT12.
	SensorAddress uint16 = 0x5c

	// humidityRegister is the first of the five measurement registers:
	// humidity integral and scale parts, temperature integral and scale
	// parts, then the additive checksum of the first four.
	humidityRegister byte = 0x00
)

// Dev represents a DHT12 temperature/humidity sensor.
type Dev struct {
	d        *i2c.Dev
	opts     Opts
	mu       sync.Mutex
	shutdown chan struct{}
}

// Opts holds the configuration options for the device.
type Opts struct {
	// WakeAttempts is the number of address probes sent before the sensor
	// is declared absent. Default is 3.
	WakeAttempts int
	// WakeInterval is the pause between address probes. Default is 20ms.
	WakeInterval time.Duration
	// ReadTimeout bounds the measurement read after a successful probe.
	// Default is 250ms. 0 means retry forever.
	ReadTimeout time.Duration
	// RetryInterval is the pause between read attempts. Default is 20ms.
	RetryInterval time.Duration
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	WakeAttempts:  3,
	WakeInterval:  20 * time.Millisecond,
	ReadTimeout:   250 * time.Millisecond,
	RetryInterval: 20 * time.Millisecond,
}

// NewI2C returns an object that communicates over I²C to a DHT12
// environmental sensor. Pass SensorAddress as addr unless the bus sits
// behind an address translator. The Opts can be nil.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.WakeAttempts <= 0 {
		return nil, errors.New("dht12: wake attempts must be at least 1")
	}
	return &Dev{d: &i2c.Dev{Bus: b, Addr: addr}, opts: *opts}, nil
}

// Sense implements physic.SenseEnv. It reads the five measurement registers
// and decodes them at the sensor's fixed tenth of a unit scale. The
// pressure is always 0 since the DHT12 does not measure pressure.
//
// On a fault e is left untouched so the caller keeps its previous
// measurement: a NoAckError when the sensor never acknowledges its address,
// a ReadTimeoutError when the registers cannot be read before the deadline,
// a ChecksumError when the response fails its additive checksum.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Probe until the sensor acknowledges its address.
	var err error
	for i := 0; i < d.opts.WakeAttempts; i++ {
		if err = d.d.Tx([]byte{humidityRegister}, nil); err == nil {
			break
		}
		sleep(d.opts.WakeInterval)
	}
	if err != nil {
		return &NoAckError{}
	}

	var buf [5]byte
	end := time.Now().Add(d.opts.ReadTimeout)
	for d.opts.ReadTimeout <= 0 || time.Now().Before(end) {
		if err = d.d.Tx([]byte{humidityRegister}, buf[:]); err != nil {
			sleep(d.opts.RetryInterval)
			continue
		}
		if common.Sum8(buf[:4]) != buf[4] {
			return &ChecksumError{}
		}

		// Values are transmitted as an integral byte plus a tenths
		// byte; the temperature tenths byte carries the sign in its
		// high bit.
		h := uint32(buf[0])*10 + uint32(buf[1])
		e.Humidity = physic.RelativeHumidity(h) * (physic.PercentRH / 10)
		t := int32(buf[2])*10 + int32(buf[3]&0x7f)
		if buf[3]&0x80 != 0 {
			t = -t
		}
		e.Temperature = physic.ZeroCelsius + (physic.Celsius/10)*physic.Temperature(t)
		return nil
	}
	return &ReadTimeoutError{}
}

// SenseContinuous returns a channel that can be read to return values from
// the sensor. The minimum value for interval is 2 seconds, the sensor's own
// sample rate. To end the read, call Halt().
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval < 2*time.Second {
		return nil, errors.New("dht12: invalid duration. minimum 2 seconds")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		return nil, errors.New("dht12: sense continuous already running")
	}

	d.shutdown = make(chan struct{})
	ch := make(chan physic.Env, 16)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-d.shutdown:
				close(ch)
				return
			case <-ticker.C:
				e := physic.Env{}
				if err := d.Sense(&e); err == nil {
					ch <- e
				}
			}
		}
	}()
	return ch, nil
}

// Halt interrupts a running SenseContinuous() operation.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		close(d.shutdown)
		d.shutdown = nil
	}
	return nil
}

// Precision returns the resolution of the device for its measured
// parameters.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Celsius / 10
	e.Pressure = 0
	e.Humidity = physic.PercentRH / 10
}

func (d *Dev) String() string {
	return fmt.Sprintf("dht12: %s", d.d)
}

var sleep = time.Sleep

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
