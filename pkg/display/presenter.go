package display

import (
	"fmt"

	"github.com/itohio/waveid/pkg/classify"
)

// View is one of the two result screens.
type View int

const (
	ShapeView View = iota
	MeasurementView
)

func (v View) String() string {
	if v == ShapeView {
		return "shape"
	}
	return "measurement"
}

// Labels holds the on-screen texts of one language.
type Labels struct {
	Waiting   string
	Acquiring string
	Ready     string
	ReadyHint string
	Prompt    string
	PromptKey string
	ShowKey   string
	Shape     string
	Shapes    map[classify.Shape]string
}

// English labels.
var English = Labels{
	Waiting:   "Waiting...",
	Acquiring: "Acquiring...",
	Ready:     "Ready",
	ReadyHint: "Press SHOW",
	Prompt:    "Press button:",
	PromptKey: "START",
	ShowKey:   "SHOW",
	Shape:     "Waveform: ",
	Shapes: map[classify.Shape]string{
		classify.Unknown:  "Unknown",
		classify.Square:   "Square",
		classify.Triangle: "Triangle",
		classify.Sine:     "Sine",
	},
}

// Spanish labels, as shown by the board firmware.
var Spanish = Labels{
	Waiting:   "Esperando...",
	Acquiring: "Adquiriendo...",
	Ready:     "Listo",
	ReadyHint: "Pulsa MOSTRAR",
	Prompt:    "Pulsa el boton:",
	PromptKey: "INICIO",
	ShowKey:   "MOSTRAR",
	Shape:     "Forma Onda: ",
	Shapes: map[classify.Shape]string{
		classify.Unknown:  "Desconocida",
		classify.Square:   "Cuadrada",
		classify.Triangle: "Triangular",
		classify.Sine:     "Senoidal",
	},
}

// LabelsFor returns the label set for a language code ("en" or "es").
func LabelsFor(lang string) (Labels, error) {
	switch lang {
	case "en", "":
		return English, nil
	case "es":
		return Spanish, nil
	default:
		return Labels{}, fmt.Errorf("unsupported language %q", lang)
	}
}

// Readout is what the presenter shows about one acquisition.
type Readout struct {
	Shape     classify.Shape
	Amplitude float64 // V peak-to-peak
	Frequency float64 // Hz
}

// Presenter renders status screens and alternates the two result views.
// The only state it keeps is the view toggle, which persists across presentations.
type Presenter struct {
	d         Display
	labels    Labels
	showShape bool
}

// NewPresenter creates a presenter starting with the shape view.
func NewPresenter(d Display, labels Labels) *Presenter {
	return &Presenter{d: d, labels: labels, showShape: true}
}

// Waiting shows the power-on screen.
func (p *Presenter) Waiting() {
	p.screen(p.labels.Waiting, "")
}

// Acquiring shows the acquisition-in-progress screen.
func (p *Presenter) Acquiring() {
	p.screen(p.labels.Acquiring, "")
}

// Ready shows that results can be displayed.
func (p *Presenter) Ready() {
	p.screen(p.labels.Ready, p.labels.ReadyHint)
}

// Prompt shows the screen asking for a new acquisition.
func (p *Presenter) Prompt() {
	p.screen(p.labels.Prompt, p.labels.PromptKey)
}

// Next renders the current view and flips the toggle. It returns the view rendered.
func (p *Presenter) Next(r Readout) View {
	view := MeasurementView
	if p.showShape {
		view = ShapeView
		p.screen(p.labels.Shape, p.shapeLabel(r.Shape))
	} else {
		p.screen(
			fmt.Sprintf("Freq: %.2fHz", r.Frequency),
			fmt.Sprintf("Amp: %.2fV", r.Amplitude),
		)
	}
	p.showShape = !p.showShape
	return view
}

func (p *Presenter) shapeLabel(s classify.Shape) string {
	if l, ok := p.labels.Shapes[s]; ok {
		return l
	}
	return p.labels.Shapes[classify.Unknown]
}

func (p *Presenter) screen(top, bottom string) {
	p.d.Clear()
	p.d.SetCursor(0, 0)
	p.d.Print(top)
	if bottom != "" {
		p.d.SetCursor(0, 1)
		p.d.Print(bottom)
	}
}
