package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownsample_NoDownsampling(t *testing.T) {
	values := []uint16{10, 20, 30}

	result := Downsample(nil, values, 10)
	require.Len(t, result, 3)
	assert.Equal(t, values, result)

	// Reuses dst when it has enough capacity
	dst := make([]uint16, 0, 10)
	result = Downsample(dst, values, 10)
	require.Len(t, result, 3)
	assert.Equal(t, values, result)
	assert.Equal(t, cap(dst), cap(result))
}

func TestDownsample_WithDownsampling(t *testing.T) {
	values := make([]uint16, 100)
	for i := range values {
		values[i] = uint16(i * 10)
	}

	dst := make([]uint16, 0, 20)
	result := Downsample(dst, values, 10)
	require.Len(t, result, 10)

	assert.Equal(t, values[0], result[0])
	assert.GreaterOrEqual(t, result[len(result)-1], uint16(800))
	for i := 1; i < len(result); i++ {
		assert.Greater(t, result[i], result[i-1], "decimation keeps order")
	}
	assert.Equal(t, cap(dst), cap(result))
}

func TestDownsample_SmallDst(t *testing.T) {
	values := make([]float32, 50)
	for i := range values {
		values[i] = float32(i)
	}

	dst := make([]float32, 0, 2)
	result := Downsample(dst, values, 5)
	require.Len(t, result, 5)
	assert.Equal(t, []float32{0, 10, 20, 30, 40}, result)
}

func TestDownsample_Empty(t *testing.T) {
	result := Downsample[uint16](nil, nil, 10)
	assert.Len(t, result, 0)
}
