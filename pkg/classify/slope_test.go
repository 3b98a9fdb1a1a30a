package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlopeStatistics_Classify(t *testing.T) {
	c := NewSlopeStatistics(DefaultSlopeConfig())

	tests := []struct {
		name    string
		samples []uint16
		want    Shape
	}{
		{name: "alternating square", samples: alternating(60), want: Square},
		{name: "ramp 0..1020..0", samples: ramp(60, 17, false), want: Triangle},
		{name: "short ramp 0..510..0", samples: ramp(30, 17, false), want: Triangle},
		{name: "jittered ramp", samples: ramp(30, 17, true), want: Triangle},
		{name: "sine", samples: sine(60), want: Sine},
		{name: "plateau square has a single jump", samples: plateau(60), want: Sine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.samples, 0)
			assert.Equal(t, tt.want, got.Shape, "features: %+v", got.Features)
			assert.Nil(t, got.Derivatives)
		})
	}
}

func TestSlopeStatistics_Features(t *testing.T) {
	c := NewSlopeStatistics(DefaultSlopeConfig())

	got := c.Classify(ramp(60, 17, false), 0)
	assert.Equal(t, 0, got.Features.Abrupt)
	assert.Equal(t, 60, got.Features.Positive)
	assert.Equal(t, 60, got.Features.Negative)
	assert.True(t, got.Features.SlopeConstant)

	got = c.Classify(alternating(60), 0)
	assert.Equal(t, 59, got.Features.Abrupt)
	assert.Equal(t, 30, got.Features.Positive)
	assert.Equal(t, 29, got.Features.Negative)
}

func TestSlopeStatistics_UnequalRampIsSine(t *testing.T) {
	c := NewSlopeStatistics(DefaultSlopeConfig())

	// Constant slope magnitude but the rising part is longer.
	samples := ramp(30, 17, false)
	samples = samples[:len(samples)-1]

	assert.Equal(t, Sine, c.Classify(samples, 0).Shape)
}

func TestSlopeStatistics_FlatSignal(t *testing.T) {
	c := NewSlopeStatistics(DefaultSlopeConfig())

	// No slopes at all: constant, zero positive == zero negative.
	assert.Equal(t, Triangle, c.Classify([]uint16{512, 512, 512, 512}, 0).Shape)
}

func TestSlopeStatistics_SignedChange(t *testing.T) {
	cfg := DefaultSlopeConfig()
	cfg.SignedChange = true
	c := NewSlopeStatistics(cfg)

	tests := []struct {
		name    string
		samples []uint16
		want    Shape
	}{
		{name: "turning point breaks linearity", samples: ramp(60, 17, false), want: Sine},
		{name: "alternating square", samples: alternating(60), want: Square},
		{name: "flat", samples: []uint16{512, 512, 512, 512}, want: Triangle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.samples, 0).Shape)
		})
	}
}
