package classify

import (
	"github.com/chewxy/math32"
)

// SecondDerivativeConfig holds the empirically tuned thresholds of the
// second-derivative strategy.
type SecondDerivativeConfig struct {
	NearZero      float32 // d2 below this counts as flat
	Small         float32 // d2 below this counts as straight
	SquareRatio   float64 // share of flat points that makes a square
	FrequencyGain float64 // straight-count threshold per Hz
}

// DefaultSecondDerivativeConfig returns the thresholds the device shipped with.
func DefaultSecondDerivativeConfig() SecondDerivativeConfig {
	return SecondDerivativeConfig{
		NearZero:      0.01,
		Small:         5,
		SquareRatio:   0.9,
		FrequencyGain: 3,
	}
}

// SecondDerivative classifies by the curvature of the sampled waveform:
// squares are flat almost everywhere, triangles are straight, sines are curved.
type SecondDerivative struct {
	cfg SecondDerivativeConfig
}

var _ Classifier = (*SecondDerivative)(nil)

// NewSecondDerivative creates the strategy.
func NewSecondDerivative(cfg SecondDerivativeConfig) *SecondDerivative {
	return &SecondDerivative{cfg: cfg}
}

// Name returns the strategy name.
func (c *SecondDerivative) Name() string { return StrategySecondDerivative }

// Classify implements Classifier.
//
// A non-positive frequency gives a threshold <= 0, so Triangle always wins over Sine.
// That matches the device behaviour and is kept as is.
func (c *SecondDerivative) Classify(samples []uint16, frequency float64) Result {
	n := len(samples)
	if n < 3 {
		return Result{Shape: Unknown}
	}

	d2 := make([]float32, n-2)
	var f Features
	for i := 2; i < n; i++ {
		x0 := math32.Abs(float32(samples[i-2]))
		x1 := math32.Abs(float32(samples[i-1]))
		x2 := math32.Abs(float32(samples[i]))
		v := math32.Abs(x2 - 2*x1 + x0)
		d2[i-2] = v

		if v < c.cfg.Small {
			f.Small++
		}
		if v < c.cfg.NearZero {
			f.NearZero++
		}
	}
	f.Threshold = int(frequency * c.cfg.FrequencyGain)

	limit := c.cfg.SquareRatio * float64(n-2)
	shape := Unknown
	switch {
	case float64(f.NearZero) > limit:
		shape = Square
	case f.Small >= f.Threshold:
		shape = Triangle
	case f.Small < f.Threshold:
		shape = Sine
	}

	return Result{Shape: shape, Features: f, Derivatives: d2}
}
