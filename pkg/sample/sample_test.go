package sample

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  bool
	}{
		{name: "40 samples", capacity: 40},
		{name: "60 samples", capacity: 60},
		{name: "100 samples", capacity: 100},
		{name: "minimum", capacity: MinCapacity},
		{name: "maximum", capacity: MaxCapacity},
		{name: "zero", capacity: 0, wantErr: true},
		{name: "too small", capacity: 2, wantErr: true},
		{name: "too large", capacity: MaxCapacity + 1, wantErr: true},
		{name: "negative", capacity: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewBuffer(tt.capacity)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrCapacity)
				assert.Nil(t, buf)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.capacity, buf.Cap())
			assert.Equal(t, 0, buf.Len())
			assert.False(t, buf.Full())
		})
	}
}

func TestBuffer_FillInOrder(t *testing.T) {
	buf, err := NewBuffer(5)
	require.NoError(t, err)

	for i := range 5 {
		buf.Push(uint16(i * 100))
	}

	assert.True(t, buf.Full())
	assert.Equal(t, []uint16{0, 100, 200, 300, 400}, buf.Samples(nil))
	assert.Equal(t, uint16(0), buf.At(0))
	assert.Equal(t, uint16(400), buf.At(4))
}

func TestBuffer_WrapOverwritesOldest(t *testing.T) {
	const n = 60
	buf, err := NewBuffer(n)
	require.NoError(t, err)

	for i := range n + 1 {
		buf.Push(uint16(i))
	}

	assert.Equal(t, n, buf.Len(), "length stays at capacity after wrap")
	samples := buf.Samples(nil)
	require.Len(t, samples, n)
	assert.Equal(t, uint16(1), samples[0], "oldest sample overwritten")
	assert.Equal(t, uint16(n), samples[n-1], "newest sample last")
}

func TestBuffer_Reset(t *testing.T) {
	buf, err := NewBuffer(3)
	require.NoError(t, err)

	buf.Push(1)
	buf.Push(2)
	buf.Reset()

	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 3, buf.Cap())

	buf.Push(7)
	assert.Equal(t, []uint16{7}, buf.Samples(nil))
}

func TestBuffer_SamplesReusesDst(t *testing.T) {
	buf, err := NewBuffer(4)
	require.NoError(t, err)
	for i := range 4 {
		buf.Push(uint16(i))
	}

	dst := make([]uint16, 0, 10)
	out := buf.Samples(dst)
	assert.Equal(t, cap(dst), cap(out))
	assert.Equal(t, []uint16{0, 1, 2, 3}, out)
}

func TestBuffer_AtOutOfRange(t *testing.T) {
	buf, err := NewBuffer(3)
	require.NoError(t, err)
	buf.Push(1)

	assert.Panics(t, func() { buf.At(1) })
	assert.Panics(t, func() { buf.At(-1) })
}

func TestVolts(t *testing.T) {
	assert.InDelta(t, 0.0, Volts(0), 1e-9)
	assert.InDelta(t, 5.0, Volts(1023), 1e-9)
	assert.InDelta(t, 2.5, Volts(511), 0.01)
}

func TestPeakToPeak(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for range 100 {
		n := 3 + rng.Intn(100)
		seq := make([]uint16, n)
		maxV, minV := uint16(0), uint16(MaxValue)
		for i := range seq {
			seq[i] = uint16(rng.Intn(MaxValue + 1))
			maxV = max(maxV, seq[i])
			minV = min(minV, seq[i])
		}

		got := PeakToPeak(maxV, minV)
		assert.InDelta(t, float64(maxV-minV)*5.0/1023.0, got, 1e-9)
		assert.GreaterOrEqual(t, got, 0.0)
	}

	assert.Equal(t, 0.0, PeakToPeak(0, MaxValue), "sentinel extrema yield zero")
}

func TestSummarize(t *testing.T) {
	s := Summarize([]uint16{0, 1023, 0, 1023})

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 0.0, s.Min, 1e-9)
	assert.InDelta(t, 5.0, s.Max, 1e-9)
	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, 5.0, s.PeakToPeak, 1e-9)
	assert.Greater(t, s.StdDev, 0.0)

	assert.Equal(t, Summary{}, Summarize(nil))

	single := Summarize([]uint16{512})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, 0.0, single.StdDev)
}
