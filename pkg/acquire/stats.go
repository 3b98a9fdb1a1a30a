package acquire

import (
	"time"

	"github.com/itohio/waveid/pkg/sample"
)

// Stats holds the running statistics of an acquisition.
// It is mutated only by the Engine and its FrequencyEstimator.
type Stats struct {
	Max          uint16    // Highest reading since the last reset (batch) or in the buffer (continuous); sentinel 0
	Min          uint16    // Lowest reading since the last reset (batch) or in the buffer (continuous); sentinel 1023
	Frequency    float64   // Last frequency estimate in Hz, stale if no crossing occurred
	LastCrossing time.Time // Time of the last recorded crossing, zero if none
	Count        int       // Samples the extrema were taken over

	armed bool // mean-crossing detector may fire on the next sample above the mean
}

// NewStats returns stats with extrema at their sentinels.
func NewStats() Stats {
	return Stats{Max: 0, Min: sample.MaxValue, armed: true}
}

// Amplitude returns the peak-to-peak voltage between Max and Min.
func (s Stats) Amplitude() float64 {
	return sample.PeakToPeak(s.Max, s.Min)
}

// Midpoint returns (Max+Min)/2, the running mean reference used by MeanCrossing.
func (s Stats) Midpoint() float64 {
	return (float64(s.Max) + float64(s.Min)) / 2.0
}

// ResetExtrema restores Max/Min to their sentinels before a new acquisition.
func (s *Stats) ResetExtrema() {
	s.Max = 0
	s.Min = sample.MaxValue
	s.Count = 0
}

// Reset clears extrema and crossing state after results were presented.
// The frequency estimate is kept, so a cycle with no crossing shows the previous value.
func (s *Stats) Reset() {
	s.ResetExtrema()
	s.LastCrossing = time.Time{}
	s.armed = true
}

// observe updates the extrema with v.
func (s *Stats) observe(v uint16) {
	if v > s.Max {
		s.Max = v
	}
	if v < s.Min {
		s.Min = v
	}
	s.Count++
}

// rescan recomputes the extrema over the samples held in buf.
func (s *Stats) rescan(buf *sample.Buffer) {
	s.ResetExtrema()
	for i := 0; i < buf.Len(); i++ {
		s.observe(buf.At(i))
	}
}
