package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/waveid/pkg/acquire"
	"github.com/itohio/waveid/pkg/classify"
	"github.com/itohio/waveid/pkg/config"
	"github.com/itohio/waveid/pkg/device"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createAcquisitionTab(state),
		createClassifierTab(state),
		createPresentationTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 500))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// applySettings validates a modified copy of the configuration, saves it and
// restarts the acquisition chain. The running configuration is left untouched
// when validation or saving fails.
func applySettings(state *appState, modify func(cfg *config.Config)) {
	next := *state.cfg
	modify(&next)

	if err := next.Validate(); err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	if err := next.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
		return
	}

	*state.cfg = next
	state.reconnect()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	ports, err := device.Ports()
	portOptions := []string{}
	if err == nil {
		for _, port := range ports {
			portOptions = append(portOptions, port.Name)
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	found := false
	for _, opt := range portOptions {
		if opt == currentPort {
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentPort != "" {
		portSelect.SetSelected(currentPort)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Serial.Baud))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
		},
		OnSubmit: func() {
			applySettings(state, func(cfg *config.Config) {
				if portSelect.Selected != "" {
					cfg.Serial.Port = portSelect.Selected
				}
				if baud, err := strconv.Atoi(baudEntry.Text); err == nil {
					cfg.Serial.Baud = baud
				}
			})
		},
	}

	return container.NewTabItem("Serial", form)
}

// createAcquisitionTab creates the Acquisition configuration tab.
func createAcquisitionTab(state *appState) *container.TabItem {
	a := state.cfg.Acquisition

	samplesEntry := widget.NewEntry()
	samplesEntry.SetText(strconv.Itoa(a.Samples))

	modeSelect := widget.NewSelect([]string{acquire.Batch.String(), acquire.Continuous.String()}, nil)
	modeSelect.SetSelected(a.Mode)

	strategySelect := widget.NewSelect([]string{acquire.StrategyMean, acquire.StrategyThreshold}, nil)
	strategySelect.SetSelected(a.Frequency.Strategy)

	thresholdEntry := widget.NewEntry()
	thresholdEntry.SetText(strconv.Itoa(int(a.Frequency.Threshold)))

	guardEntry := widget.NewEntry()
	guardEntry.SetText(a.Frequency.Guard.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Samples", Widget: samplesEntry},
			{Text: "Mode", Widget: modeSelect},
			{Text: "Frequency Strategy", Widget: strategySelect},
			{Text: "Threshold (ADC)", Widget: thresholdEntry},
			{Text: "Guard", Widget: guardEntry},
		},
		OnSubmit: func() {
			applySettings(state, func(cfg *config.Config) {
				if n, err := strconv.Atoi(samplesEntry.Text); err == nil {
					cfg.Acquisition.Samples = n
				}
				cfg.Acquisition.Mode = modeSelect.Selected
				cfg.Acquisition.Frequency.Strategy = strategySelect.Selected
				if th, err := strconv.ParseUint(thresholdEntry.Text, 10, 16); err == nil {
					cfg.Acquisition.Frequency.Threshold = uint16(th)
				}
				if g, err := time.ParseDuration(guardEntry.Text); err == nil {
					cfg.Acquisition.Frequency.Guard = g
				}
			})
		},
	}

	return container.NewTabItem("Acquisition", form)
}

// createClassifierTab creates the Classifier configuration tab.
func createClassifierTab(state *appState) *container.TabItem {
	c := state.cfg.Classifier

	strategySelect := widget.NewSelect([]string{classify.StrategySecondDerivative, classify.StrategySlope}, nil)
	strategySelect.SetSelected(c.Strategy)

	nearZeroEntry := widget.NewEntry()
	nearZeroEntry.SetText(fmt.Sprintf("%g", c.SecondDerivative.NearZero))

	smallEntry := widget.NewEntry()
	smallEntry.SetText(fmt.Sprintf("%g", c.SecondDerivative.Small))

	gainEntry := widget.NewEntry()
	gainEntry.SetText(fmt.Sprintf("%g", c.SecondDerivative.FrequencyGain))

	abruptEntry := widget.NewEntry()
	abruptEntry.SetText(strconv.Itoa(c.Slope.Abrupt))

	slopeChangeEntry := widget.NewEntry()
	slopeChangeEntry.SetText(strconv.Itoa(c.Slope.SlopeChange))

	signedCheck := widget.NewCheck("", nil)
	signedCheck.SetChecked(c.Slope.SignedChange)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Strategy", Widget: strategySelect},
			{Text: "Flat |d2| below", Widget: nearZeroEntry},
			{Text: "Straight |d2| below", Widget: smallEntry},
			{Text: "Straight count per Hz", Widget: gainEntry},
			{Text: "Abrupt |slope| above", Widget: abruptEntry},
			{Text: "Slope change above", Widget: slopeChangeEntry},
			{Text: "Signed slope change", Widget: signedCheck},
		},
		OnSubmit: func() {
			applySettings(state, func(cfg *config.Config) {
				cfg.Classifier.Strategy = strategySelect.Selected
				if v, err := strconv.ParseFloat(nearZeroEntry.Text, 32); err == nil {
					cfg.Classifier.SecondDerivative.NearZero = float32(v)
				}
				if v, err := strconv.ParseFloat(smallEntry.Text, 32); err == nil {
					cfg.Classifier.SecondDerivative.Small = float32(v)
				}
				if v, err := strconv.ParseFloat(gainEntry.Text, 64); err == nil {
					cfg.Classifier.SecondDerivative.FrequencyGain = v
				}
				if v, err := strconv.Atoi(abruptEntry.Text); err == nil {
					cfg.Classifier.Slope.Abrupt = v
				}
				if v, err := strconv.Atoi(slopeChangeEntry.Text); err == nil {
					cfg.Classifier.Slope.SlopeChange = v
				}
				cfg.Classifier.Slope.SignedChange = signedCheck.Checked
			})
		},
	}

	return container.NewTabItem("Classifier", form)
}

// createPresentationTab creates the Presentation configuration tab.
func createPresentationTab(state *appState) *container.TabItem {
	p := state.cfg.Presentation

	intervalEntry := widget.NewEntry()
	intervalEntry.SetText(p.ViewInterval.String())

	cyclesEntry := widget.NewEntry()
	cyclesEntry.SetText(strconv.Itoa(p.MaxCycles))

	languageSelect := widget.NewSelect([]string{"en", "es"}, nil)
	languageSelect.SetSelected(p.Language)

	derivativesCheck := widget.NewCheck("", nil)
	derivativesCheck.SetChecked(state.cfg.Diagnostics.Derivatives)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "View Interval", Widget: intervalEntry},
			{Text: "Views per Presentation", Widget: cyclesEntry},
			{Text: "Language", Widget: languageSelect},
			{Text: "Dump Derivatives", Widget: derivativesCheck},
		},
		OnSubmit: func() {
			applySettings(state, func(cfg *config.Config) {
				if d, err := time.ParseDuration(intervalEntry.Text); err == nil {
					cfg.Presentation.ViewInterval = d
				}
				if n, err := strconv.Atoi(cyclesEntry.Text); err == nil {
					cfg.Presentation.MaxCycles = n
				}
				cfg.Presentation.Language = languageSelect.Selected
				cfg.Diagnostics.Derivatives = derivativesCheck.Checked
				if derivativesCheck.Checked {
					cfg.Diagnostics.Enabled = true
				}
			})
		},
	}

	return container.NewTabItem("Presentation", form)
}

// createMockTab creates the Mock device configuration tab.
func createMockTab(state *appState) *container.TabItem {
	m := state.cfg.Mock

	shapeSelect := widget.NewSelect([]string{device.ShapeSquare, device.ShapeTriangle, device.ShapeSine}, nil)
	shapeSelect.SetSelected(m.Shape)

	frequencyEntry := widget.NewEntry()
	frequencyEntry.SetText(fmt.Sprintf("%.2f", m.Frequency))

	amplitudeEntry := widget.NewEntry()
	amplitudeEntry.SetText(fmt.Sprintf("%.2f", m.Amplitude))

	offsetEntry := widget.NewEntry()
	offsetEntry.SetText(fmt.Sprintf("%.2f", m.Offset))

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(fmt.Sprintf("%.3f", m.Noise))

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(m.SampleRate.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Shape", Widget: shapeSelect},
			{Text: "Frequency (Hz)", Widget: frequencyEntry},
			{Text: "Amplitude (Vpp)", Widget: amplitudeEntry},
			{Text: "Offset (V)", Widget: offsetEntry},
			{Text: "Noise (V)", Widget: noiseEntry},
			{Text: "Sample Rate", Widget: sampleRateEntry},
		},
		OnSubmit: func() {
			applySettings(state, func(cfg *config.Config) {
				cfg.Mock.Shape = shapeSelect.Selected
				if v, err := strconv.ParseFloat(frequencyEntry.Text, 64); err == nil {
					cfg.Mock.Frequency = v
				}
				if v, err := strconv.ParseFloat(amplitudeEntry.Text, 64); err == nil {
					cfg.Mock.Amplitude = v
				}
				if v, err := strconv.ParseFloat(offsetEntry.Text, 64); err == nil {
					cfg.Mock.Offset = v
				}
				if v, err := strconv.ParseFloat(noiseEntry.Text, 64); err == nil {
					cfg.Mock.Noise = v
				}
				if sr, err := time.ParseDuration(sampleRateEntry.Text); err == nil {
					cfg.Mock.SampleRate = sr
				}
			})
		},
	}

	return container.NewTabItem("Mock", form)
}
