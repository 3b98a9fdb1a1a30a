//go:build tinygo

//go:generate tinygo flash -target=arduino-nano33

package main

import (
	"context"
	"machine"
	"time"

	"tinygo.org/x/drivers/hd44780i2c"

	"github.com/itohio/waveid/pkg/acquire"
	"github.com/itohio/waveid/pkg/classify"
	"github.com/itohio/waveid/pkg/clock"
	"github.com/itohio/waveid/pkg/control"
	"github.com/itohio/waveid/pkg/diag"
	"github.com/itohio/waveid/pkg/display"
	"github.com/itohio/waveid/pkg/session"
)

// lcd adapts the HD44780 driver to display.Display.
type lcd struct {
	dev *hd44780i2c.Device
}

func (l lcd) Clear() { l.dev.ClearDisplay() }

func (l lcd) SetCursor(col, row int) { l.dev.SetCursor(uint8(col), uint8(row)) }

func (l lcd) Print(text string) { l.dev.Print([]byte(text)) }

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: UART_BAUD_RATE})

	// Configure ADC
	machine.InitADC()
	PIN_ADC.Configure(machine.PinConfig{Mode: machine.PinInput})
	adc := machine.ADC{Pin: PIN_ADC}
	adc.Configure(machine.ADCConfig{})

	// Configure buttons
	PIN_START.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	PIN_SHOW.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	// Configure LCD
	if err := machine.I2C0.Configure(machine.I2CConfig{}); err != nil {
		halt("could not configure I2C", err)
	}
	dev := hd44780i2c.New(machine.I2C0, LCD_ADDRESS)
	if err := dev.Configure(hd44780i2c.Config{Width: LCD_COLUMNS, Height: LCD_ROWS}); err != nil {
		halt("could not configure LCD", err)
	}

	log := diag.New(machine.Serial, DIAG_BUFFER)
	clk := clock.Real{}

	ch := acquire.ChannelFunc(func() acquire.Reading {
		return acquire.Reading{Value: adc.Get() >> ADC_SHIFT, At: time.Now()}
	})

	eng, err := acquire.New(acquire.Config{
		Samples:  NUM_SAMPLES,
		Interval: SAMPLE_INTERVAL_MS * time.Millisecond,
		Mode:     acquire.Batch,
	}, ch, clk, acquire.MeanCrossing{}, acquire.WithLogger(log))
	if err != nil {
		halt("could not create engine", err)
	}

	cfg := session.DefaultConfig()
	cfg.DumpDerivatives = DUMP_DERIVATIVE

	ctl, err := session.NewController(cfg, session.Components{
		Engine:     eng,
		Classifier: classify.NewSecondDerivative(classify.DefaultSecondDerivativeConfig()),
		Presenter:  display.NewPresenter(lcd{dev: &dev}, display.Spanish),
		Input: control.NewInput(
			control.ButtonFunc(func() bool { return !PIN_START.Get() }),
			control.ButtonFunc(func() bool { return !PIN_SHOW.Get() }),
			clk,
			DEBOUNCE_MS*time.Millisecond,
		),
		Clock: clk,
		Log:   log,
	})
	if err != nil {
		halt("could not create controller", err)
	}

	// Main loop
	for {
		if err := ctl.Tick(context.Background()); err != nil {
			println("tick failed:", err.Error())
		}
		time.Sleep(session.DefaultPollInterval)
	}
}

// halt reports a fatal startup error forever.
func halt(msg string, err error) {
	for {
		println(msg+":", err.Error())
		time.Sleep(time.Second)
	}
}
