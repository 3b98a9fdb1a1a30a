package device

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/itohio/waveid/pkg/config"
	"github.com/itohio/waveid/pkg/sample"
)

// Mock shapes.
const (
	ShapeSquare   = "square"
	ShapeTriangle = "triangle"
	ShapeSine     = "sine"
)

// Mock simulates a waveid board feeding a function generator signal.
type Mock struct {
	cfg config.MockConfig // copied, so later config edits do not race the generator

	samples   chan RawSample
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	startTime time.Time
}

// NewMock creates a new mocked device instance from a copy of cfg.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.Default().Mock
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:     *cfg,
		samples: make(chan RawSample, DefaultBufferSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Connect starts generating samples.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}
	switch m.cfg.Shape {
	case ShapeSquare, ShapeTriangle, ShapeSine:
	default:
		return fmt.Errorf("unknown mock shape %q", m.cfg.Shape)
	}
	if m.cfg.SampleRate <= 0 {
		return fmt.Errorf("mock sample rate must be positive")
	}

	m.connected = true
	m.startTime = time.Now()

	go m.generateSamples()

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	close(m.samples)

	return nil
}

// Samples returns the channel for reading samples.
func (m *Mock) Samples() <-chan RawSample {
	return m.samples
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

func (m *Mock) generateSamples() {
	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			s := RawSample{Timestamp: now, Value: m.value(now.Sub(m.startTime))}

			m.mu.RLock()
			if !m.connected {
				m.mu.RUnlock()
				return
			}
			select {
			case m.samples <- s:
			default:
				// Channel full, skip
			}
			m.mu.RUnlock()
		}
	}
}

// value returns the ADC reading at elapsed time t.
func (m *Mock) value(t time.Duration) uint16 {
	phase := math.Mod(t.Seconds()*m.cfg.Frequency, 1)
	v := m.cfg.Offset + m.cfg.Amplitude/2*waveform(m.cfg.Shape, phase)

	// Deterministic noise so that runs are repeatable
	ns := float64(t.Nanoseconds())
	v += (math.Sin(ns*0.001) + math.Cos(ns*0.0013)) * m.cfg.Noise * 0.5

	return toADC(v)
}

// waveform returns a unit-amplitude (-1..1) shape at phase 0..1.
func waveform(shape string, phase float64) float64 {
	switch shape {
	case ShapeSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case ShapeTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// toADC converts volts to a clamped 10-bit reading.
func toADC(v float64) uint16 {
	val := v / sample.FullScaleVolts * sample.MaxValue
	if val < 0 {
		val = 0
	} else if val > sample.MaxValue {
		val = sample.MaxValue
	}
	return uint16(math.Round(val))
}
