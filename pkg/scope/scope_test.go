package scope

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/itohio/waveid/pkg/acquire"
	"github.com/itohio/waveid/pkg/classify"
	"github.com/itohio/waveid/pkg/sample"
	"github.com/itohio/waveid/pkg/session"
	"github.com/stretchr/testify/assert"
)

func TestPlotArea_Point(t *testing.T) {
	pa := plotArea{x: 10, y: 20, w: 100, h: 50}

	tests := []struct {
		name string
		i, n int
		norm float64
		want fyne.Position
	}{
		{"bottom left", 0, 11, 0, fyne.NewPos(10, 70)},
		{"top right", 10, 11, 1, fyne.NewPos(110, 20)},
		{"middle", 5, 11, 0.5, fyne.NewPos(60, 45)},
		{"clamped above", 0, 11, 3, fyne.NewPos(10, 20)},
		{"clamped below", 0, 11, -1, fyne.NewPos(10, 70)},
		{"single point", 0, 1, 0, fyne.NewPos(10, 70)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pa.point(tt.i, tt.n, tt.norm)
			assert.InDelta(t, tt.want.X, got.X, 1e-4)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-4)
		})
	}
}

func TestMaxOf(t *testing.T) {
	assert.Equal(t, float64(1), maxOf(nil))
	assert.Equal(t, float64(1), maxOf([]float32{0, 0}))
	assert.Equal(t, float64(8), maxOf([]float32{2, 8, 3}))
}

func TestInfo(t *testing.T) {
	assert.Equal(t, "idle: no data", Info(session.Snapshot{}))

	samples := []uint16{0, 1023, 0, 1023}
	stats := acquire.NewStats()
	stats.Max, stats.Min, stats.Frequency = 1023, 0, 12.5
	snap := session.Snapshot{
		State:     session.Presenting,
		Samples:   samples,
		Stats:     stats,
		Amplitude: stats.Amplitude(),
		Result:    classify.Result{Shape: classify.Square},
		Summary:   sample.Summarize(samples),
	}

	assert.Equal(t, "presenting | Square | 12.50 Hz | 5.00 Vpp | mean 2.50 V | sd 2.89 V | n=4", Info(snap))
}

func TestFormatVoltage(t *testing.T) {
	assert.Equal(t, "2.5V", formatVoltage(2.5))
	assert.Equal(t, "0.0V", formatVoltage(0))
}
