package dht12

type NoAckError struct{}

func (e *NoAckError) Error() string {
	return "DHT12 did not acknowledge its address. Check the wiring."
}

type ReadTimeoutError struct{}

func (e *ReadTimeoutError) Error() string {
	return "Read timeout. DHT12 did not deliver a measurement in time."
}

type ChecksumError struct{}

func (e *ChecksumError) Error() string {
	return "Checksum mismatch. The measurement was corrupted on the wire."
}
