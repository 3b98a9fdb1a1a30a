package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondDerivative_Classify(t *testing.T) {
	c := NewSecondDerivative(DefaultSecondDerivativeConfig())

	tests := []struct {
		name      string
		samples   []uint16
		frequency float64
		want      Shape
	}{
		{
			name:      "plateau square",
			samples:   plateau(60),
			frequency: 1.67,
			want:      Square,
		},
		{
			// Exactly linear ramps have d2 == 0 and read as flat.
			name:      "exact ramp reads as square",
			samples:   ramp(30, 17, false),
			frequency: 1.67,
			want:      Square,
		},
		{
			name:      "jittered ramp triangle",
			samples:   ramp(30, 17, true),
			frequency: 1.67,
			want:      Triangle,
		},
		{
			name:      "sine at high frequency estimate",
			samples:   sine(60),
			frequency: 20,
			want:      Sine,
		},
		{
			name:      "sine with low threshold reads as triangle",
			samples:   sine(60),
			frequency: 1.67,
			want:      Triangle,
		},
		{
			name:      "alternating full scale is all curvature",
			samples:   alternating(60),
			frequency: 20,
			want:      Sine,
		},
		{
			name:      "zero frequency never yields sine",
			samples:   alternating(60),
			frequency: 0,
			want:      Triangle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.samples, tt.frequency)
			assert.Equal(t, tt.want, got.Shape, "features: %+v", got.Features)
		})
	}
}

func TestSecondDerivative_Features(t *testing.T) {
	c := NewSecondDerivative(DefaultSecondDerivativeConfig())

	// 0,0,0,10,20,30: d2 = 0, 10, 0, 0
	got := c.Classify([]uint16{0, 0, 0, 10, 20, 30}, 2.9)

	require.Len(t, got.Derivatives, 4)
	assert.Equal(t, []float32{0, 10, 0, 0}, got.Derivatives)
	assert.Equal(t, 3, got.Features.NearZero)
	assert.Equal(t, 3, got.Features.Small)
	assert.Equal(t, 8, got.Features.Threshold, "threshold truncates frequency*3")
}

func TestSecondDerivative_DerivativeLength(t *testing.T) {
	c := NewSecondDerivative(DefaultSecondDerivativeConfig())

	for _, n := range []int{40, 60, 100} {
		got := c.Classify(sine(n), 10)
		assert.Len(t, got.Derivatives, n-2)
		for _, v := range got.Derivatives {
			assert.GreaterOrEqual(t, v, float32(0))
		}
	}
}

func TestSecondDerivative_CustomThresholds(t *testing.T) {
	cfg := DefaultSecondDerivativeConfig()
	cfg.Small = 100
	c := NewSecondDerivative(cfg)

	got := c.Classify(sine(60), 1.0)
	assert.Equal(t, 58, got.Features.Small)
	assert.Equal(t, Triangle, got.Shape)
}
