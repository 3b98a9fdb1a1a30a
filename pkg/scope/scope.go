package scope

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/waveid/pkg/sample"
	"github.com/itohio/waveid/pkg/session"
)

// DefaultMaxPoints limits the number of points drawn per trace.
const DefaultMaxPoints = 1000

// ScopeWidget is a custom Fyne widget that displays the acquired waveform,
// its second derivative and the measurement readout.
type ScopeWidget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu       sync.RWMutex
	volts    []float64 // downsampled samples in volts
	d2       []float32 // downsampled |d2|
	midpoint float64   // crossing reference in volts
	info     string

	// Display buffers (reused for downsampling)
	rawBuf []uint16

	maxDisplayPoints int
}

// New creates a new ScopeWidget instance.
func New() *ScopeWidget {
	s := &ScopeWidget{
		volts:            make([]float64, 0, DefaultMaxPoints),
		rawBuf:           make([]uint16, 0, DefaultMaxPoints),
		maxDisplayPoints: DefaultMaxPoints,
		info:             "no data",
	}
	s.ExtendBaseWidget(s)
	s.Refresh()
	return s
}

// Update replaces the displayed acquisition.
// This should be called from the controller callback using fyne.Do().
func (s *ScopeWidget) Update(snap session.Snapshot) {
	s.mu.Lock()

	s.rawBuf = sample.Downsample(s.rawBuf, snap.Samples, s.maxDisplayPoints)
	s.volts = s.volts[:0]
	for _, v := range s.rawBuf {
		s.volts = append(s.volts, sample.Volts(v))
	}
	s.d2 = sample.Downsample(s.d2, snap.Result.Derivatives, s.maxDisplayPoints)
	s.midpoint = 0
	if snap.Stats.Max >= snap.Stats.Min {
		s.midpoint = snap.Stats.Midpoint() * sample.FullScaleVolts / sample.MaxValue
	}
	s.info = Info(snap)

	s.mu.Unlock()

	// Refresh the widget (must be outside lock to avoid potential deadlock)
	s.Refresh()
}

// Info formats the readout line shown above the traces.
func Info(snap session.Snapshot) string {
	if len(snap.Samples) == 0 {
		return fmt.Sprintf("%s: no data", snap.State)
	}
	return fmt.Sprintf("%s | %s | %.2f Hz | %.2f Vpp | mean %.2f V | sd %.2f V | n=%d",
		snap.State, snap.Result.Shape, snap.Stats.Frequency, snap.Amplitude,
		snap.Summary.Mean, snap.Summary.StdDev, snap.Summary.Count)
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	grid := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &scopeRenderer{
		scope:   s,
		grid:    grid,
		objects: []fyne.CanvasObject{grid},
	}
}
