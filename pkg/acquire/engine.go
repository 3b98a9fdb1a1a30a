package acquire

import (
	"context"
	"fmt"
	"time"

	"github.com/itohio/waveid/pkg/clock"
	"github.com/itohio/waveid/pkg/sample"
)

const (
	// DefaultSamples is the sample count of one batch acquisition.
	DefaultSamples = 60
	// DefaultInterval is the delay after each batch read.
	DefaultInterval = 10 * time.Millisecond
)

// Mode selects how the engine fills the buffer.
type Mode int

const (
	// Batch fills the whole buffer in one blocking call.
	Batch Mode = iota
	// Continuous takes one sample per call into a circular buffer.
	Continuous
)

func (m Mode) String() string {
	switch m {
	case Batch:
		return "batch"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name to Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "batch", "":
		return Batch, nil
	case "continuous":
		return Continuous, nil
	default:
		return Batch, fmt.Errorf("unknown acquisition mode %q", name)
	}
}

// Reading is one ADC conversion and the time it was taken.
type Reading struct {
	Value uint16
	At    time.Time
}

// Channel is an analog input sampled on demand.
type Channel interface {
	Read(ctx context.Context) (Reading, error)
}

// Flusher is implemented by channels that queue readings ahead of demand.
// Acquire flushes them first so that a batch holds contiguous samples.
type Flusher interface {
	Flush()
}

// ChannelFunc adapts a plain read function that cannot fail, such as an MCU ADC pin.
type ChannelFunc func() Reading

// Read implements Channel.
func (f ChannelFunc) Read(context.Context) (Reading, error) { return f(), nil }

// Logger receives one diagnostic line per raw sample.
type Logger interface {
	Logf(format string, args ...any)
}

// Config configures an Engine.
type Config struct {
	Samples  int           // Buffer capacity (sample count per acquisition)
	Interval time.Duration // Delay after each batch read; 0 when the channel paces itself
	Mode     Mode
}

// DefaultConfig returns the 60-sample, 10 ms batch configuration.
func DefaultConfig() Config {
	return Config{
		Samples:  DefaultSamples,
		Interval: DefaultInterval,
		Mode:     Batch,
	}
}

// Engine reads samples from a Channel into a sample.Buffer and keeps Stats up to date.
type Engine struct {
	cfg       Config
	ch        Channel
	clk       clock.Clock
	estimator FrequencyEstimator
	log       Logger
}

// Option configures optional Engine collaborators.
type Option func(*Engine)

// WithLogger streams every raw sample as "<unix_micros>,<value>".
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New creates an Engine. The buffer size is validated here so that a
// misconfigured device fails before the first acquisition.
func New(cfg Config, ch Channel, clk clock.Clock, est FrequencyEstimator, opts ...Option) (*Engine, error) {
	if cfg.Samples < sample.MinCapacity || cfg.Samples > sample.MaxCapacity {
		return nil, fmt.Errorf("%w: %d samples", sample.ErrCapacity, cfg.Samples)
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("negative sample interval %v", cfg.Interval)
	}
	if ch == nil {
		return nil, fmt.Errorf("nil channel")
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if est == nil {
		est = MeanCrossing{}
	}

	e := &Engine{
		cfg:       cfg,
		ch:        ch,
		clk:       clk,
		estimator: est,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Estimator returns the frequency estimation policy.
func (e *Engine) Estimator() FrequencyEstimator { return e.estimator }

// Acquire performs a batch acquisition: it resets buf and the extrema, then reads
// buf.Cap() samples, sleeping Interval after each one. The call blocks for
// Cap()×Interval and is not preemptible; ctx is honoured only by channels that block.
func (e *Engine) Acquire(ctx context.Context, buf *sample.Buffer, stats *Stats) error {
	buf.Reset()
	stats.ResetExtrema()
	if f, ok := e.ch.(Flusher); ok {
		f.Flush()
	}

	for i := 0; i < buf.Cap(); i++ {
		if err := e.sample(ctx, buf, stats); err != nil {
			return fmt.Errorf("acquire sample %d/%d: %w", i+1, buf.Cap(), err)
		}
		e.clk.Sleep(e.cfg.Interval)
	}
	return nil
}

// Step takes a single sample into buf (continuous mode). When buf is full the
// oldest sample is overwritten. The extrema always cover the samples currently
// in buf, so overwritten samples no longer count toward amplitude or the
// mean-crossing reference.
func (e *Engine) Step(ctx context.Context, buf *sample.Buffer, stats *Stats) error {
	r, err := e.read(ctx)
	if err != nil {
		return fmt.Errorf("acquire sample: %w", err)
	}
	buf.Push(r.Value)
	stats.rescan(buf)
	e.record(stats, r)
	return nil
}

func (e *Engine) sample(ctx context.Context, buf *sample.Buffer, stats *Stats) error {
	r, err := e.read(ctx)
	if err != nil {
		return err
	}
	buf.Push(r.Value)
	stats.observe(r.Value)
	e.record(stats, r)
	return nil
}

func (e *Engine) read(ctx context.Context) (Reading, error) {
	r, err := e.ch.Read(ctx)
	if err != nil {
		return Reading{}, err
	}
	if r.Value > sample.MaxValue {
		r.Value = sample.MaxValue
	}
	return r, nil
}

// record feeds the frequency estimator and the diagnostic stream.
func (e *Engine) record(stats *Stats, r Reading) {
	e.estimator.Observe(stats, r.Value, r.At)
	if e.log != nil {
		e.log.Logf("%d,%d", r.At.UnixMicro(), r.Value)
	}
}
