package classify

// SlopeConfig holds the thresholds of the slope-statistics strategy, in ADC units.
type SlopeConfig struct {
	Abrupt      int     // |slope| above this is a discontinuity
	SlopeChange int     // slope magnitude change above this breaks linearity
	SquareRatio float64 // share of abrupt slopes that makes a square

	// SignedChange compares consecutive slopes as |s[i]-s[i-1]| instead of by
	// magnitude. A triangle's turning point then breaks linearity.
	SignedChange bool
}

// DefaultSlopeConfig returns the thresholds the device shipped with.
func DefaultSlopeConfig() SlopeConfig {
	return SlopeConfig{
		Abrupt:      200,
		SlopeChange: 10,
		SquareRatio: 0.5,
	}
}

// SlopeStatistics classifies by first differences: squares jump, triangles rise
// and fall at a constant rate for equally long, everything else is a sine.
type SlopeStatistics struct {
	cfg SlopeConfig
}

var _ Classifier = (*SlopeStatistics)(nil)

// NewSlopeStatistics creates the strategy.
func NewSlopeStatistics(cfg SlopeConfig) *SlopeStatistics {
	return &SlopeStatistics{cfg: cfg}
}

// Name returns the strategy name.
func (c *SlopeStatistics) Name() string { return StrategySlope }

// Classify implements Classifier. The frequency estimate is not used.
func (c *SlopeStatistics) Classify(samples []uint16, _ float64) Result {
	n := len(samples)
	if n < 3 {
		return Result{Shape: Unknown}
	}

	f := Features{SlopeConstant: true}
	prev := 0
	for i := 1; i < n; i++ {
		slope := int(samples[i]) - int(samples[i-1])

		if abs(slope) > c.cfg.Abrupt {
			f.Abrupt++
		}
		switch {
		case slope > 0:
			f.Positive++
		case slope < 0:
			f.Negative++
		}
		// The turn of a triangle flips the sign but not the magnitude.
		change := abs(slope) - abs(prev)
		if c.cfg.SignedChange {
			change = slope - prev
		}
		if i > 1 && abs(change) > c.cfg.SlopeChange {
			f.SlopeConstant = false
		}
		prev = slope
	}

	shape := Sine
	switch {
	case float64(f.Abrupt) > c.cfg.SquareRatio*float64(n):
		shape = Square
	case f.SlopeConstant && f.Positive == f.Negative:
		shape = Triangle
	}

	return Result{Shape: shape, Features: f}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
