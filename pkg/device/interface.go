package device

import (
	"errors"
	"time"
)

// ErrClosed is returned by Channel.Read once the device stream has ended.
var ErrClosed = errors.New("device closed")

// RawSample represents one ADC reading streamed by the board.
type RawSample struct {
	Timestamp time.Time
	Value     uint16 // 10-bit ADC reading (0-1023)
}

// Device defines the interface for sample sources (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Samples() <-chan RawSample
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
