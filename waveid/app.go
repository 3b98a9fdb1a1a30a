package main

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/waveid/pkg/clock"
	"github.com/itohio/waveid/pkg/config"
	"github.com/itohio/waveid/pkg/control"
	"github.com/itohio/waveid/pkg/device"
	"github.com/itohio/waveid/pkg/display"
	"github.com/itohio/waveid/pkg/scope"
	"github.com/itohio/waveid/pkg/session"
)

// updateInterval throttles scope redraws in continuous mode (~30 FPS).
const updateInterval = 33 * time.Millisecond

// appState holds the application state.
type appState struct {
	cfg         *config.Config
	configPath  string
	window      fyne.Window
	lcd         *display.Text
	scopeWidget *scope.ScopeWidget
	connectBtn  *widget.Button
	startBtn    *widget.Button
	showBtn     *widget.Button
	useMock     bool

	start control.Latch
	show  control.Latch

	link link

	// Throttling for scope updates
	lastUpdateTime time.Time
	updateMu       sync.Mutex
}

// createToolbar creates the application toolbar with Connect and Settings buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	return container.NewHBox(connectBtn, settingsBtn)
}

// createControls creates the START and SHOW front panel buttons.
func createControls(state *appState) fyne.CanvasObject {
	labels, err := state.cfg.Labels()
	if err != nil {
		labels = display.English
	}

	state.startBtn = widget.NewButtonWithIcon(labels.PromptKey, theme.MediaPlayIcon(), state.start.Press)
	state.startBtn.Importance = widget.HighImportance
	state.startBtn.Disable()

	state.showBtn = widget.NewButtonWithIcon(labels.ShowKey, theme.VisibilityIcon(), state.show.Press)
	state.showBtn.Disable()

	return container.NewCenter(container.NewHBox(state.startBtn, state.showBtn))
}

// handleConnect toggles the device connection.
func handleConnect(state *appState) {
	if state.link.running() {
		state.disconnect()
		state.startBtn.Disable()
		state.showBtn.Disable()
		fmt.Println("Disconnected")
		return
	}

	if err := state.connect(); err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.startBtn.Enable()
	state.showBtn.Enable()
	if state.useMock {
		fmt.Println("Connected to mocked device")
	} else {
		fmt.Printf("Connected to serial port: %s\n", state.cfg.Serial.Port)
	}
}

// connect opens the device and starts the controller loop.
// A loop left over from an earlier connection is torn down first.
func (state *appState) connect() error {
	state.link.stop()

	dev := openDevice(state.cfg, state.useMock)
	if err := dev.Connect(); err != nil {
		if state.useMock {
			return fmt.Errorf("failed to connect to mocked device: %w", err)
		}
		return fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err)
	}

	st, err := newStation(state.cfg, device.NewChannel(dev), clock.Real{}, state.lcd, &state.start, &state.show, os.Stderr)
	if err != nil {
		dev.Close()
		return err
	}

	st.ctl.OnUpdate(func(snap session.Snapshot) {
		// Throttle continuous-mode updates to prevent UI from being
		// overwhelmed. Presentation updates always get through.
		state.updateMu.Lock()
		now := time.Now()
		skip := snap.State == session.Idle && now.Sub(state.lastUpdateTime) < updateInterval
		if !skip {
			state.lastUpdateTime = now
		}
		state.updateMu.Unlock()
		if skip {
			return
		}

		fyne.Do(func() {
			state.scopeWidget.Update(snap)
		})
	})

	state.link.start(dev, st, func(err error) {
		log.Printf("Controller stopped: %v", err)
		fyne.Do(func() {
			state.startBtn.Disable()
			state.showBtn.Disable()
			dialog.ShowError(err, state.window)
		})
	})
	return nil
}

// disconnect stops the controller loop and closes the device.
func (state *appState) disconnect() {
	state.link.stop()
}

// reconnect restarts the chain after settings changed.
func (state *appState) reconnect() {
	if !state.link.running() {
		return
	}
	if err := state.connect(); err != nil {
		state.startBtn.Disable()
		state.showBtn.Disable()
		dialog.ShowError(err, state.window)
	}
}
