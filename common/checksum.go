// Copyright 2026 The Envview Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, an additive checksum calculation.
package common

// Sum8 calculates the 8-bit additive checksum of the byte slice parameter
// and returns the calculated value. Sum bytes are used in sensors from the
// DHT/AM family, which append the low byte of the sum of the payload to
// each response.
func Sum8(bytes []byte) byte {
	var sum byte
	for _, val := range bytes {
		sum += val
	}
	return sum
}
