package classify

import (
	"fmt"
)

// Shape is the waveform class of one acquisition.
type Shape int

const (
	Unknown Shape = iota
	Square
	Triangle
	Sine
)

func (s Shape) String() string {
	switch s {
	case Square:
		return "Square"
	case Triangle:
		return "Triangle"
	case Sine:
		return "Sine"
	default:
		return "Unknown"
	}
}

// Strategy names.
const (
	StrategySecondDerivative = "second-derivative"
	StrategySlope            = "slope"
)

// Features are the counts a strategy based its decision on.
type Features struct {
	// Second-derivative strategy
	NearZero  int // |d2| < NearZero threshold
	Small     int // |d2| < Small threshold
	Threshold int // adaptive count threshold derived from frequency

	// Slope strategy
	Abrupt        int // |slope| above the abrupt threshold
	Positive      int
	Negative      int
	SlopeConstant bool
}

// Result is the outcome of one classification.
type Result struct {
	Shape    Shape
	Features Features
	// Derivatives holds |d2| for the second-derivative strategy (len N-2), nil otherwise.
	Derivatives []float32
}

// Classifier maps an ordered sample sequence and the current frequency estimate to a Shape.
// Implementations are pure: the same input always yields the same Result.
type Classifier interface {
	Name() string
	Classify(samples []uint16, frequency float64) Result
}

// New returns the classifier for a strategy name with default thresholds.
func New(name string) (Classifier, error) {
	switch name {
	case StrategySecondDerivative, "":
		return NewSecondDerivative(DefaultSecondDerivativeConfig()), nil
	case StrategySlope:
		return NewSlopeStatistics(DefaultSlopeConfig()), nil
	default:
		return nil, fmt.Errorf("unknown classifier strategy %q", name)
	}
}
