package panel

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/waveid/pkg/display"
)

var (
	backlight = color.RGBA{R: 60, G: 110, B: 200, A: 255}
	pixels    = color.RGBA{R: 235, G: 240, B: 255, A: 255}
)

// LCD is a Fyne widget mirroring a display.Text as a backlit character LCD.
type LCD struct {
	widget.BaseWidget

	text *display.Text
	rows []*canvas.Text
}

// New creates an LCD bound to text. Every change of text refreshes the
// widget on the Fyne thread.
func New(text *display.Text) *LCD {
	l := &LCD{text: text}
	for range text.Lines() {
		row := canvas.NewText("", pixels)
		row.TextStyle = fyne.TextStyle{Monospace: true}
		row.TextSize = 22
		l.rows = append(l.rows, row)
	}
	l.ExtendBaseWidget(l)

	text.OnChange(func() {
		fyne.Do(l.Refresh)
	})
	return l
}

// Refresh copies the display contents into the widget.
func (l *LCD) Refresh() {
	for i, line := range l.text.Lines() {
		if i < len(l.rows) {
			l.rows[i].Text = line
			l.rows[i].Refresh()
		}
	}
	l.BaseWidget.Refresh()
}

// CreateRenderer creates the widget renderer.
func (l *LCD) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(backlight)
	bg.CornerRadius = 6

	objs := make([]fyne.CanvasObject, len(l.rows))
	for i, row := range l.rows {
		objs[i] = row
	}
	return widget.NewSimpleRenderer(container.NewStack(bg, container.NewPadded(container.NewVBox(objs...))))
}
