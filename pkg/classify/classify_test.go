package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alternating returns 0,1023,0,1023,... of length n.
func alternating(n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		if i%2 == 1 {
			out[i] = 1023
		}
	}
	return out
}

// plateau returns a square wave with one low and one high half.
func plateau(n int) []uint16 {
	out := make([]uint16, n)
	for i := n / 2; i < n; i++ {
		out[i] = 1023
	}
	return out
}

// ramp returns 0,step,2*step,... up to peak steps, then back down to 0.
// jitter adds i%2 to every sample.
func ramp(peak int, step int, jitter bool) []uint16 {
	var out []uint16
	for i := 0; i <= peak; i++ {
		out = append(out, uint16(step*i))
	}
	for i := peak - 1; i >= 0; i-- {
		out = append(out, uint16(step*i))
	}
	if jitter {
		for i := range out {
			out[i] += uint16(i % 2)
		}
	}
	return out
}

func sine(n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = uint16(math.Round(512 + 511*math.Sin(2*math.Pi*float64(i)/float64(n))))
	}
	return out
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "Square", Square.String())
	assert.Equal(t, "Triangle", Triangle.String())
	assert.Equal(t, "Sine", Sine.String())
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "Unknown", Shape(42).String())
}

func TestNew(t *testing.T) {
	c, err := New(StrategySecondDerivative)
	require.NoError(t, err)
	assert.Equal(t, StrategySecondDerivative, c.Name())

	c, err = New(StrategySlope)
	require.NoError(t, err)
	assert.Equal(t, StrategySlope, c.Name())

	c, err = New("")
	require.NoError(t, err)
	assert.Equal(t, StrategySecondDerivative, c.Name())

	_, err = New("fft")
	assert.Error(t, err)
}

func TestClassifiers_ShortInput(t *testing.T) {
	for _, c := range []Classifier{
		NewSecondDerivative(DefaultSecondDerivativeConfig()),
		NewSlopeStatistics(DefaultSlopeConfig()),
	} {
		t.Run(c.Name(), func(t *testing.T) {
			assert.Equal(t, Unknown, c.Classify(nil, 10).Shape)
			assert.Equal(t, Unknown, c.Classify([]uint16{1, 2}, 10).Shape)
		})
	}
}

func TestClassifiers_Idempotent(t *testing.T) {
	inputs := [][]uint16{alternating(60), plateau(60), ramp(30, 17, false), sine(60)}

	for _, c := range []Classifier{
		NewSecondDerivative(DefaultSecondDerivativeConfig()),
		NewSlopeStatistics(DefaultSlopeConfig()),
	} {
		for _, in := range inputs {
			snapshot := append([]uint16(nil), in...)
			first := c.Classify(in, 4.2)
			second := c.Classify(in, 4.2)
			assert.Equal(t, first, second, c.Name())
			assert.Equal(t, snapshot, in, "input is not modified")
		}
	}
}
