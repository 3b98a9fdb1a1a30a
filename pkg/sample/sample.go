package sample

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// MaxValue is the full-scale reading of the 10-bit ADC.
	MaxValue = 1023
	// FullScaleVolts is the ADC reference voltage.
	FullScaleVolts = 5.0

	// MinCapacity is the smallest buffer the classifiers can work with (one second derivative).
	MinCapacity = 3
	// MaxCapacity bounds the buffer to what fits comfortably in MCU RAM.
	MaxCapacity = 1024
)

// ErrCapacity is returned when a buffer capacity is outside [MinCapacity, MaxCapacity].
var ErrCapacity = errors.New("invalid buffer capacity")

// Buffer is a fixed-capacity ordered sequence of raw ADC samples.
// Samples are indexed from the oldest (0) to the newest (Len()-1).
// Once full, Push overwrites the oldest sample.
type Buffer struct {
	data []uint16
	head int // next write position
	n    int // number of valid samples
}

// NewBuffer allocates a buffer holding exactly capacity samples.
func NewBuffer(capacity int) (*Buffer, error) {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrCapacity, capacity, MinCapacity, MaxCapacity)
	}
	return &Buffer{data: make([]uint16, capacity)}, nil
}

// Cap returns the configured sample count.
func (b *Buffer) Cap() int { return len(b.data) }

// Len returns the number of valid samples.
func (b *Buffer) Len() int { return b.n }

// Full reports whether Len() == Cap().
func (b *Buffer) Full() bool { return b.n == len(b.data) }

// Reset discards all samples. Capacity is kept.
func (b *Buffer) Reset() {
	b.head = 0
	b.n = 0
}

// Push appends v, overwriting the oldest sample when the buffer is full.
func (b *Buffer) Push(v uint16) {
	b.data[b.head] = v
	b.head = (b.head + 1) % len(b.data)
	if b.n < len(b.data) {
		b.n++
	}
}

// At returns the i-th oldest sample.
func (b *Buffer) At(i int) uint16 {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("sample: index %d out of range [0,%d)", i, b.n))
	}
	start := b.head - b.n
	if start < 0 {
		start += len(b.data)
	}
	return b.data[(start+i)%len(b.data)]
}

// Samples copies the samples in acquisition order into dst and returns it.
// dst is reused if it has enough capacity, otherwise a new slice is allocated.
func (b *Buffer) Samples(dst []uint16) []uint16 {
	if cap(dst) >= b.n {
		dst = dst[:b.n]
	} else {
		dst = make([]uint16, b.n)
	}
	for i := range dst {
		dst[i] = b.At(i)
	}
	return dst
}

// Volts converts a raw reading to volts.
func Volts(raw uint16) float64 {
	return float64(raw) * FullScaleVolts / MaxValue
}

// PeakToPeak returns the peak-to-peak voltage between max and min readings.
// It is never negative: max < min (no samples observed yet) yields 0.
func PeakToPeak(max, min uint16) float64 {
	if max < min {
		return 0
	}
	return float64(max-min) * FullScaleVolts / MaxValue
}

// Summary holds descriptive statistics of one acquisition in volts.
type Summary struct {
	Count      int
	Min        float64
	Max        float64
	Mean       float64
	StdDev     float64
	PeakToPeak float64
}

// Summarize computes descriptive statistics of samples.
func Summarize(samples []uint16) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	volts := make([]float64, len(samples))
	for i, s := range samples {
		volts[i] = Volts(s)
	}

	mean, std := stat.MeanStdDev(volts, nil)
	if len(volts) < 2 {
		std = 0
	}
	minV := floats.Min(volts)
	maxV := floats.Max(volts)

	return Summary{
		Count:      len(volts),
		Min:        minV,
		Max:        maxV,
		Mean:       mean,
		StdDev:     std,
		PeakToPeak: maxV - minV,
	}
}
