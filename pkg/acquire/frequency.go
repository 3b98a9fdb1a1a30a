package acquire

import (
	"fmt"
	"time"
)

const (
	// DefaultThreshold is mid-scale of the 10-bit ADC.
	DefaultThreshold = 512
	// DefaultGuard suppresses re-triggering on noise around the threshold.
	DefaultGuard = 20 * time.Millisecond
)

// Frequency strategy names.
const (
	StrategyMean      = "mean"
	StrategyThreshold = "threshold"
)

// FrequencyEstimator updates Stats.Frequency and Stats.LastCrossing from a stream of samples.
// Extrema are already updated with v when Observe is called.
type FrequencyEstimator interface {
	Name() string
	Observe(s *Stats, v uint16, at time.Time)
}

var (
	_ FrequencyEstimator = ThresholdCrossing{}
	_ FrequencyEstimator = MeanCrossing{}
)

// ThresholdCrossing records a crossing whenever a sample is above a fixed level
// and at least Guard has elapsed since the previous crossing.
type ThresholdCrossing struct {
	Threshold uint16
	Guard     time.Duration
}

// NewThresholdCrossing returns the estimator with the default threshold and guard.
func NewThresholdCrossing() ThresholdCrossing {
	return ThresholdCrossing{Threshold: DefaultThreshold, Guard: DefaultGuard}
}

// Name returns the strategy name.
func (ThresholdCrossing) Name() string { return StrategyThreshold }

// Observe implements FrequencyEstimator.
func (e ThresholdCrossing) Observe(s *Stats, v uint16, at time.Time) {
	if v <= e.Threshold {
		return
	}
	if s.LastCrossing.IsZero() {
		s.LastCrossing = at
		return
	}

	dt := at.Sub(s.LastCrossing)
	if dt < e.Guard || dt <= 0 {
		return
	}
	s.Frequency = 1.0 / dt.Seconds()
	s.LastCrossing = at
}

// MeanCrossing detects rising crossings of the running (Max+Min)/2 reference.
// A crossing fires once per excursion: the detector re-arms only after the
// signal falls back below the reference.
type MeanCrossing struct{}

// Name returns the strategy name.
func (MeanCrossing) Name() string { return StrategyMean }

// Observe implements FrequencyEstimator.
func (MeanCrossing) Observe(s *Stats, v uint16, at time.Time) {
	mean := s.Midpoint()
	value := float64(v)

	if s.armed && value > mean {
		s.armed = false
		if !s.LastCrossing.IsZero() {
			if dt := at.Sub(s.LastCrossing); dt > 0 {
				s.Frequency = 1.0 / dt.Seconds()
			}
		}
		s.LastCrossing = at
	}

	if value < mean {
		s.armed = true
	}
}

// NewEstimator returns the estimator for a strategy name.
func NewEstimator(name string, threshold uint16, guard time.Duration) (FrequencyEstimator, error) {
	switch name {
	case StrategyMean, "":
		return MeanCrossing{}, nil
	case StrategyThreshold:
		return ThresholdCrossing{Threshold: threshold, Guard: guard}, nil
	default:
		return nil, fmt.Errorf("unknown frequency strategy %q", name)
	}
}
