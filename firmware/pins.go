//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	NUM_SAMPLES        = 60 // Samples per acquisition
	SAMPLE_INTERVAL_MS = 10 // Delay after each ADC read in milliseconds
	DEBOUNCE_MS        = 200

	// TinyGo scales every ADC to 16 bits; the classifier works on 10-bit values.
	ADC_SHIFT = 6

	// Input pins
	PIN_ADC   = machine.A0
	PIN_START = machine.D7 // Active low, internal pull-up
	PIN_SHOW  = machine.D8 // Active low, internal pull-up

	// LCD on I2C0 (PCF8574 backpack)
	LCD_ADDRESS = 0x27
	LCD_COLUMNS = 16
	LCD_ROWS    = 2

	// Diagnostic stream
	// Format "unix_micros,value\n" is ~20 bytes; 100 lines/sec = 2,000 bytes/sec.
	// 115200 baud gives ~5.7x headroom.
	UART_BAUD_RATE  = 115200
	DIAG_BUFFER     = 64
	DUMP_DERIVATIVE = true
)
