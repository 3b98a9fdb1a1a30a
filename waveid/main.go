package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/itohio/waveid/pkg/config"
	"github.com/itohio/waveid/pkg/device"
	"github.com/itohio/waveid/pkg/display"
	"github.com/itohio/waveid/pkg/panel"
	"github.com/itohio/waveid/pkg/scope"
)

func main() {
	var (
		portFlag     = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag   = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag     = flag.Bool("mock", false, "Use mocked device instead of serial port")
		headlessFlag = flag.Bool("headless", false, "Acquire and present once, printing LCD frames to stdout")
		langFlag     = flag.String("lang", "", "Display language override (en or es)")
		strategyFlag = flag.String("strategy", "", "Classifier strategy override (second-derivative or slope)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Command line overrides
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *langFlag != "" {
		cfg.Presentation.Language = *langFlag
	}
	if *strategyFlag != "" {
		cfg.Classifier.Strategy = *strategyFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *headlessFlag {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err := runHeadless(ctx, cfg, openDevice(cfg, *mockFlag), os.Stdout)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Headless run failed: %v", err)
		}
		return
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.waveid")

	window := application.NewWindow("Waveform Identifier")
	window.Resize(fyne.NewSize(900, 650))
	window.CenterOnScreen()

	lcd := display.NewText(display.Columns, display.Rows)

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		window:     window,
		lcd:        lcd,
		useMock:    *mockFlag,
	}

	state.scopeWidget = scope.New()
	toolbar := createToolbar(state)
	controls := createControls(state)

	content := container.NewBorder(
		container.NewVBox(toolbar, container.NewCenter(panel.New(lcd))),
		controls,
		nil,
		nil,
		state.scopeWidget,
	)

	window.SetContent(content)
	window.SetOnClosed(func() {
		state.disconnect()
	})
	window.ShowAndRun()
}

// openDevice returns the configured sample source.
func openDevice(cfg *config.Config, useMock bool) device.Device {
	if useMock {
		return device.NewMock(&cfg.Mock)
	}
	return device.New(cfg.Serial.Port, cfg.Serial.Baud, device.DefaultBufferSize)
}
