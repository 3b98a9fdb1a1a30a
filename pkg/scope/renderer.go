package scope

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/itohio/waveid/pkg/sample"
)

var (
	sampleColor   = color.RGBA{R: 255, G: 165, B: 0, A: 255}   // Orange
	d2Color       = color.RGBA{R: 100, G: 200, B: 255, A: 255} // Light blue
	midpointColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	gridColor     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor    = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// d2Band is the share of the plot height used by the derivative trace.
const d2Band = 0.25

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	// Background
	grid *canvas.Rectangle

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	r.grid.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh updates the widget display.
func (r *scopeRenderer) Refresh() {
	r.scope.mu.RLock()
	volts := r.scope.volts
	d2 := r.scope.d2
	midpoint := r.scope.midpoint
	info := r.scope.info
	r.scope.mu.RUnlock()

	size := r.scope.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.grid}

	marginLeft := float32(60.0)
	marginRight := float32(20.0)
	marginTop := float32(30.0)
	marginBottom := float32(40.0)

	pa := plotArea{
		x: marginLeft,
		y: marginTop,
		w: size.Width - marginLeft - marginRight,
		h: size.Height - marginTop - marginBottom,
	}

	r.drawGrid(pa, len(volts))
	if midpoint > 0 {
		r.drawHorizontal(pa, midpoint/sample.FullScaleVolts, midpointColor)
	}
	r.drawTrace(pa, volts, 1/sample.FullScaleVolts, 1, sampleColor, 1.5)
	if len(d2) > 1 {
		r.drawTrace(pa, widen(d2), 1/maxOf(d2), d2Band, d2Color, 2.5)
	}

	text := canvas.NewText(info, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	text.TextSize = 12
	text.Move(fyne.NewPos(pa.x, 6))
	r.objects = append(r.objects, text)
}

// plotArea is the drawable rectangle inside the margins.
type plotArea struct {
	x, y, w, h float32
}

// point maps sample i of n and a normalized value (0 bottom, 1 top) to a position.
func (pa plotArea) point(i, n int, norm float64) fyne.Position {
	fx := float32(0)
	if n > 1 {
		fx = float32(i) / float32(n-1)
	}
	if norm < 0 {
		norm = 0
	} else if norm > 1 {
		norm = 1
	}
	return fyne.NewPos(pa.x+fx*pa.w, pa.y+pa.h-float32(norm)*pa.h)
}

// drawGrid draws the oscilloscope-style grid: volts vertically, sample index horizontally.
func (r *scopeRenderer) drawGrid(pa plotArea, n int) {
	numHLines := 5
	for i := range numHLines + 1 {
		y := pa.y + float32(i)*pa.h/float32(numHLines)
		r.addLine(fyne.NewPos(pa.x, y), fyne.NewPos(pa.x+pa.w, y), gridColor, 1)

		value := sample.FullScaleVolts - float64(i)*sample.FullScaleVolts/float64(numHLines)
		text := canvas.NewText(formatVoltage(value), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(pa.x-5, y-6))
		r.objects = append(r.objects, text)
	}

	numVLines := 10
	for i := range numVLines + 1 {
		x := pa.x + float32(i)*pa.w/float32(numVLines)
		r.addLine(fyne.NewPos(x, pa.y), fyne.NewPos(x, pa.y+pa.h), gridColor, 1)

		if n > 1 {
			text := canvas.NewText(fmt.Sprintf("%d", i*(n-1)/numVLines), labelColor)
			text.TextSize = 10
			text.Alignment = fyne.TextAlignCenter
			text.Move(fyne.NewPos(x-10, pa.y+pa.h+5))
			r.objects = append(r.objects, text)
		}
	}
}

// drawTrace draws values scaled by gain into the bottom band share of the plot.
func (r *scopeRenderer) drawTrace(pa plotArea, values []float64, gain, band float64, c color.Color, width float32) {
	if len(values) < 2 {
		return
	}

	prev := pa.point(0, len(values), values[0]*gain*band)
	for i := 1; i < len(values); i++ {
		p := pa.point(i, len(values), values[i]*gain*band)
		r.addLine(prev, p, c, width)
		prev = p
	}
}

func (r *scopeRenderer) drawHorizontal(pa plotArea, norm float64, c color.Color) {
	left := pa.point(0, 2, norm)
	right := pa.point(1, 2, norm)
	r.addLine(left, right, c, 1)
}

func (r *scopeRenderer) addLine(p1, p2 fyne.Position, c color.Color, width float32) {
	line := canvas.NewLine(c)
	line.Position1 = p1
	line.Position2 = p2
	line.StrokeWidth = width
	r.objects = append(r.objects, line)
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {}

func formatVoltage(v float64) string {
	return fmt.Sprintf("%.1fV", v)
}

func widen(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// maxOf returns the largest value, or 1 when all values are zero.
func maxOf(values []float32) float64 {
	m := float32(0)
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	if m == 0 {
		return 1
	}
	return float64(m)
}
