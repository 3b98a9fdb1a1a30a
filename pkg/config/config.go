package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itohio/waveid/pkg/acquire"
	"github.com/itohio/waveid/pkg/classify"
	"github.com/itohio/waveid/pkg/control"
	"github.com/itohio/waveid/pkg/diag"
	"github.com/itohio/waveid/pkg/display"
	"github.com/itohio/waveid/pkg/sample"
	"github.com/itohio/waveid/pkg/session"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config represents the application configuration.
type Config struct {
	Serial       SerialConfig       `yaml:"serial"`
	Acquisition  AcquisitionConfig  `yaml:"acquisition"`
	Classifier   ClassifierConfig   `yaml:"classifier"`
	Presentation PresentationConfig `yaml:"presentation"`
	Controls     ControlsConfig     `yaml:"controls"`
	Diagnostics  DiagnosticsConfig  `yaml:"diagnostics"`
	Mock         MockConfig         `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// AcquisitionConfig contains sampling parameters.
type AcquisitionConfig struct {
	Samples   int             `yaml:"samples"`  // Buffer capacity, 3..1024
	Interval  time.Duration   `yaml:"interval"` // Delay between batch samples; 0 for self-paced devices
	Mode      string          `yaml:"mode"`     // "batch" or "continuous"
	Frequency FrequencyConfig `yaml:"frequency"`
}

// FrequencyConfig selects the frequency estimator.
type FrequencyConfig struct {
	Strategy  string        `yaml:"strategy"`  // "mean" or "threshold"
	Threshold uint16        `yaml:"threshold"` // Threshold strategy level (ADC units)
	Guard     time.Duration `yaml:"guard"`     // Threshold strategy minimum period
}

// ClassifierConfig selects the classification strategy and its thresholds.
type ClassifierConfig struct {
	Strategy         string                 `yaml:"strategy"` // "second-derivative" or "slope"
	SecondDerivative SecondDerivativeConfig `yaml:"second_derivative"`
	Slope            SlopeConfig            `yaml:"slope"`
}

// SecondDerivativeConfig mirrors classify.SecondDerivativeConfig.
type SecondDerivativeConfig struct {
	NearZero      float32 `yaml:"near_zero"`
	Small         float32 `yaml:"small"`
	SquareRatio   float64 `yaml:"square_ratio"`
	FrequencyGain float64 `yaml:"frequency_gain"`
}

// SlopeConfig mirrors classify.SlopeConfig.
type SlopeConfig struct {
	Abrupt       int     `yaml:"abrupt"`
	SlopeChange  int     `yaml:"slope_change"`
	SquareRatio  float64 `yaml:"square_ratio"`
	SignedChange bool    `yaml:"signed_change"`
}

// PresentationConfig contains result view parameters.
type PresentationConfig struct {
	ViewInterval time.Duration `yaml:"view_interval"`
	MaxCycles    int           `yaml:"max_cycles"`
	Language     string        `yaml:"language"` // "en" or "es"
}

// ControlsConfig contains button parameters.
type ControlsConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DiagnosticsConfig controls the raw sample stream.
type DiagnosticsConfig struct {
	Enabled     bool `yaml:"enabled"`
	Derivatives bool `yaml:"derivatives"` // Dump "# d2: ..." lines on every presentation
	Buffer      int  `yaml:"buffer"`      // Queued lines before dropping
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	Shape      string        `yaml:"shape"`       // "square", "triangle" or "sine"
	Frequency  float64       `yaml:"frequency"`   // Signal frequency (Hz)
	Amplitude  float64       `yaml:"amplitude"`   // Peak-to-peak amplitude (V)
	Offset     float64       `yaml:"offset"`      // Signal center (V)
	Noise      float64       `yaml:"noise"`       // Noise level (V)
	SampleRate time.Duration `yaml:"sample_rate"` // Sample period
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	sd := classify.DefaultSecondDerivativeConfig()
	sl := classify.DefaultSlopeConfig()
	return &Config{
		Serial: SerialConfig{
			Port: "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			Baud: 115200,
		},
		Acquisition: AcquisitionConfig{
			Samples:  acquire.DefaultSamples,
			Interval: acquire.DefaultInterval,
			Mode:     acquire.Batch.String(),
			Frequency: FrequencyConfig{
				Strategy:  acquire.StrategyMean,
				Threshold: acquire.DefaultThreshold,
				Guard:     acquire.DefaultGuard,
			},
		},
		Classifier: ClassifierConfig{
			Strategy: classify.StrategySecondDerivative,
			SecondDerivative: SecondDerivativeConfig{
				NearZero:      sd.NearZero,
				Small:         sd.Small,
				SquareRatio:   sd.SquareRatio,
				FrequencyGain: sd.FrequencyGain,
			},
			Slope: SlopeConfig{
				Abrupt:      sl.Abrupt,
				SlopeChange: sl.SlopeChange,
				SquareRatio: sl.SquareRatio,
			},
		},
		Presentation: PresentationConfig{
			ViewInterval: session.DefaultViewInterval,
			MaxCycles:    session.DefaultMaxCycles,
			Language:     "en",
		},
		Controls: ControlsConfig{
			Debounce: control.DefaultDebounce,
		},
		Diagnostics: DiagnosticsConfig{
			Enabled:     false,
			Derivatives: false,
			Buffer:      diag.DefaultBufferSize,
		},
		Mock: MockConfig{
			Shape:      "sine",
			Frequency:  5,
			Amplitude:  4,
			Offset:     2.5,
			Noise:      0.01,
			SampleRate: 10 * time.Millisecond, // 100 samples per second
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
// Zero is a valid acquisition interval, so it is left alone.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}

	if c.Acquisition.Samples == 0 {
		c.Acquisition.Samples = def.Acquisition.Samples
	}
	if c.Acquisition.Mode == "" {
		c.Acquisition.Mode = def.Acquisition.Mode
	}
	if c.Acquisition.Frequency.Strategy == "" {
		c.Acquisition.Frequency.Strategy = def.Acquisition.Frequency.Strategy
	}
	if c.Acquisition.Frequency.Threshold == 0 {
		c.Acquisition.Frequency.Threshold = def.Acquisition.Frequency.Threshold
	}
	if c.Acquisition.Frequency.Guard == 0 {
		c.Acquisition.Frequency.Guard = def.Acquisition.Frequency.Guard
	}

	if c.Classifier.Strategy == "" {
		c.Classifier.Strategy = def.Classifier.Strategy
	}
	sd := &c.Classifier.SecondDerivative
	if sd.NearZero == 0 {
		sd.NearZero = def.Classifier.SecondDerivative.NearZero
	}
	if sd.Small == 0 {
		sd.Small = def.Classifier.SecondDerivative.Small
	}
	if sd.SquareRatio == 0 {
		sd.SquareRatio = def.Classifier.SecondDerivative.SquareRatio
	}
	if sd.FrequencyGain == 0 {
		sd.FrequencyGain = def.Classifier.SecondDerivative.FrequencyGain
	}
	sl := &c.Classifier.Slope
	if sl.Abrupt == 0 {
		sl.Abrupt = def.Classifier.Slope.Abrupt
	}
	if sl.SlopeChange == 0 {
		sl.SlopeChange = def.Classifier.Slope.SlopeChange
	}
	if sl.SquareRatio == 0 {
		sl.SquareRatio = def.Classifier.Slope.SquareRatio
	}

	if c.Presentation.ViewInterval == 0 {
		c.Presentation.ViewInterval = def.Presentation.ViewInterval
	}
	if c.Presentation.MaxCycles == 0 {
		c.Presentation.MaxCycles = def.Presentation.MaxCycles
	}
	if c.Presentation.Language == "" {
		c.Presentation.Language = def.Presentation.Language
	}

	if c.Controls.Debounce == 0 {
		c.Controls.Debounce = def.Controls.Debounce
	}

	if c.Diagnostics.Buffer == 0 {
		c.Diagnostics.Buffer = def.Diagnostics.Buffer
	}

	if c.Mock.Shape == "" {
		c.Mock.Shape = def.Mock.Shape
	}
	if c.Mock.Frequency == 0 {
		c.Mock.Frequency = def.Mock.Frequency
	}
	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
}

// Validate checks value ranges and strategy names.
func (c *Config) Validate() error {
	a := c.Acquisition
	if a.Samples < sample.MinCapacity || a.Samples > sample.MaxCapacity {
		return fmt.Errorf("%w: acquisition.samples %d outside %d..%d", ErrInvalid, a.Samples, sample.MinCapacity, sample.MaxCapacity)
	}
	if a.Interval < 0 {
		return fmt.Errorf("%w: negative acquisition.interval", ErrInvalid)
	}
	if _, err := acquire.ParseMode(a.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if a.Frequency.Threshold > sample.MaxValue {
		return fmt.Errorf("%w: acquisition.frequency.threshold %d above %d", ErrInvalid, a.Frequency.Threshold, sample.MaxValue)
	}
	if _, err := c.Estimator(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.NewClassifier(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Labels(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Presentation.ViewInterval < 0 || c.Presentation.MaxCycles < 0 {
		return fmt.Errorf("%w: negative presentation setting", ErrInvalid)
	}
	if c.Serial.Baud < 0 {
		return fmt.Errorf("%w: negative serial.baud", ErrInvalid)
	}
	if c.Mock.Frequency < 0 || c.Mock.Amplitude < 0 || c.Mock.Noise < 0 {
		return fmt.Errorf("%w: negative mock setting", ErrInvalid)
	}
	return nil
}

// EngineConfig returns the acquisition engine configuration.
func (c *Config) EngineConfig() (acquire.Config, error) {
	mode, err := acquire.ParseMode(c.Acquisition.Mode)
	if err != nil {
		return acquire.Config{}, err
	}
	return acquire.Config{
		Samples:  c.Acquisition.Samples,
		Interval: c.Acquisition.Interval,
		Mode:     mode,
	}, nil
}

// Estimator returns the configured frequency estimator.
func (c *Config) Estimator() (acquire.FrequencyEstimator, error) {
	f := c.Acquisition.Frequency
	return acquire.NewEstimator(f.Strategy, f.Threshold, f.Guard)
}

// NewClassifier returns the configured classification strategy.
func (c *Config) NewClassifier() (classify.Classifier, error) {
	switch c.Classifier.Strategy {
	case classify.StrategySecondDerivative:
		sd := c.Classifier.SecondDerivative
		return classify.NewSecondDerivative(classify.SecondDerivativeConfig{
			NearZero:      sd.NearZero,
			Small:         sd.Small,
			SquareRatio:   sd.SquareRatio,
			FrequencyGain: sd.FrequencyGain,
		}), nil
	case classify.StrategySlope:
		sl := c.Classifier.Slope
		return classify.NewSlopeStatistics(classify.SlopeConfig{
			Abrupt:       sl.Abrupt,
			SlopeChange:  sl.SlopeChange,
			SquareRatio:  sl.SquareRatio,
			SignedChange: sl.SignedChange,
		}), nil
	default:
		return classify.New(c.Classifier.Strategy)
	}
}

// ControllerConfig returns the session controller timing.
func (c *Config) ControllerConfig() session.Config {
	cfg := session.DefaultConfig()
	cfg.ViewInterval = c.Presentation.ViewInterval
	cfg.MaxCycles = c.Presentation.MaxCycles
	cfg.DumpDerivatives = c.Diagnostics.Enabled && c.Diagnostics.Derivatives
	return cfg
}

// Labels returns the on-screen texts for the configured language.
func (c *Config) Labels() (display.Labels, error) {
	return display.LabelsFor(c.Presentation.Language)
}
