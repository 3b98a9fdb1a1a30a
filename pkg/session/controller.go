package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/itohio/waveid/pkg/acquire"
	"github.com/itohio/waveid/pkg/classify"
	"github.com/itohio/waveid/pkg/clock"
	"github.com/itohio/waveid/pkg/control"
	"github.com/itohio/waveid/pkg/display"
	"github.com/itohio/waveid/pkg/sample"
)

const (
	// DefaultViewInterval is how long each result view stays on screen.
	DefaultViewInterval = 2 * time.Second
	// DefaultMaxCycles bounds the number of views shown per presentation.
	DefaultMaxCycles = 6
	// DefaultPollInterval is the idle delay of Run between ticks.
	DefaultPollInterval = 10 * time.Millisecond
)

// State of the controller.
type State int32

const (
	Idle State = iota
	Acquiring
	Presenting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Acquiring:
		return "acquiring"
	case Presenting:
		return "presenting"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Config configures a Controller.
type Config struct {
	ViewInterval    time.Duration
	MaxCycles       int
	PollInterval    time.Duration
	DumpDerivatives bool // write "# d2: ..." to the diagnostic log on every presentation
}

// DefaultConfig returns the front panel timing of the device.
func DefaultConfig() Config {
	return Config{
		ViewInterval: DefaultViewInterval,
		MaxCycles:    DefaultMaxCycles,
		PollInterval: DefaultPollInterval,
	}
}

// Components are the collaborators a Controller drives.
type Components struct {
	Engine     *acquire.Engine
	Classifier classify.Classifier
	Presenter  *display.Presenter
	Input      *control.Input
	Clock      clock.Clock
	Log        acquire.Logger // optional
}

// Snapshot is a copy of the session for observers.
type Snapshot struct {
	State     State
	Ready     bool
	Samples   []uint16
	Stats     acquire.Stats
	Amplitude float64
	Result    classify.Result
	Summary   sample.Summary
}

// Controller is the cooperative state machine of the front panel:
//
//	Idle --START--> Acquiring --done--> Idle (ready)
//	Idle (ready) --SHOW--> Presenting --cycles done or START--> Idle
//
// Acquiring and Presenting block the loop; no input is serviced meanwhile
// except the START abort check between views.
type Controller struct {
	cfg  Config
	c    Components
	mode acquire.Mode

	mu      sync.Mutex // guards sess
	sess    *Session
	state   atomic.Int32
	started bool

	callbacks []func(Snapshot)
	cbMu      sync.RWMutex
}

// NewController allocates the session and validates the components.
func NewController(cfg Config, c Components) (*Controller, error) {
	if c.Engine == nil || c.Classifier == nil || c.Presenter == nil || c.Input == nil {
		return nil, errors.New("controller: engine, classifier, presenter and input are required")
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if cfg.ViewInterval < 0 || cfg.PollInterval < 0 {
		return nil, fmt.Errorf("controller: negative interval")
	}
	if cfg.MaxCycles <= 0 {
		cfg.MaxCycles = DefaultMaxCycles
	}

	sess, err := New(c.Engine.Config().Samples)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}

	return &Controller{
		cfg:  cfg,
		c:    c,
		mode: c.Engine.Config().Mode,
		sess: sess,
	}, nil
}

// State returns the current state. Safe to call from any goroutine.
func (ctl *Controller) State() State {
	return State(ctl.state.Load())
}

// OnUpdate registers a callback invoked after every phase with a fresh snapshot.
// Callbacks run on the controller goroutine and should return quickly.
func (ctl *Controller) OnUpdate(fn func(Snapshot)) {
	ctl.cbMu.Lock()
	defer ctl.cbMu.Unlock()
	ctl.callbacks = append(ctl.callbacks, fn)
}

// Snapshot returns a copy of the session.
func (ctl *Controller) Snapshot() Snapshot {
	ctl.mu.Lock()
	samples := ctl.sess.Buffer.Samples(nil)
	stats := ctl.sess.Stats
	result := ctl.sess.Result
	result.Derivatives = append([]float32(nil), result.Derivatives...)
	ready := ctl.sess.Ready
	ctl.mu.Unlock()

	return Snapshot{
		State:     ctl.State(),
		Ready:     ready,
		Samples:   samples,
		Stats:     stats,
		Amplitude: stats.Amplitude(),
		Result:    result,
		Summary:   sample.Summarize(samples),
	}
}

// Run calls Tick until ctx is done or a tick fails.
func (ctl *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := ctl.Tick(ctx); err != nil {
			return err
		}
		clock.SleepContext(ctx, ctl.c.Clock, ctl.cfg.PollInterval)
	}
}

// Tick runs one iteration of the polling loop.
func (ctl *Controller) Tick(ctx context.Context) error {
	if !ctl.started {
		ctl.started = true
		ctl.c.Presenter.Waiting()
	}

	if ctl.mode == acquire.Continuous {
		if err := ctl.step(ctx); err != nil {
			return err
		}
	}

	switch ctl.c.Input.Poll() {
	case control.Start:
		return ctl.start(ctx)
	case control.Show:
		ctl.present(ctx)
	}
	return nil
}

// start begins an acquisition (batch) or resets the running buffer (continuous).
func (ctl *Controller) start(ctx context.Context) error {
	ctl.setState(Acquiring)
	ctl.c.Presenter.Acquiring()

	if ctl.mode == acquire.Continuous {
		ctl.mu.Lock()
		ctl.sess.Clear()
		ctl.mu.Unlock()
		ctl.setState(Idle)
		ctl.notify()
		return nil
	}

	ctl.mu.Lock()
	err := ctl.c.Engine.Acquire(ctx, ctl.sess.Buffer, &ctl.sess.Stats)
	ctl.sess.Ready = err == nil
	ctl.mu.Unlock()

	ctl.setState(Idle)
	if err != nil {
		ctl.c.Presenter.Prompt()
		ctl.notify()
		return err
	}
	ctl.c.Presenter.Ready()
	ctl.notify()
	return nil
}

// step takes one continuous sample and notifies observers.
func (ctl *Controller) step(ctx context.Context) error {
	ctl.mu.Lock()
	err := ctl.c.Engine.Step(ctx, ctl.sess.Buffer, &ctl.sess.Stats)
	becameReady := err == nil && !ctl.sess.Ready && ctl.sess.Buffer.Full()
	if becameReady {
		ctl.sess.Ready = true
	}
	ctl.mu.Unlock()

	if err != nil {
		return err
	}
	if becameReady {
		ctl.c.Presenter.Ready()
	}
	ctl.notify()
	return nil
}

// present classifies the session and cycles the result views until the
// cycle limit, a START press or ctx cancellation.
// SHOW without a completed acquisition is ignored.
func (ctl *Controller) present(ctx context.Context) {
	ctl.mu.Lock()
	if !ctl.sess.Ready {
		ctl.mu.Unlock()
		return
	}
	samples := ctl.sess.Buffer.Samples(nil)
	result := ctl.c.Classifier.Classify(samples, ctl.sess.Stats.Frequency)
	ctl.sess.Result = result
	readout := display.Readout{
		Shape:     result.Shape,
		Amplitude: ctl.sess.Stats.Amplitude(),
		Frequency: ctl.sess.Stats.Frequency,
	}
	ctl.mu.Unlock()

	ctl.setState(Presenting)
	if ctl.cfg.DumpDerivatives && ctl.c.Log != nil && result.Derivatives != nil {
		ctl.c.Log.Logf("# d2: %s", formatDerivatives(result.Derivatives))
	}
	ctl.notify()

	for i := 0; i < ctl.cfg.MaxCycles && ctx.Err() == nil && !ctl.c.Input.StartPressed(); i++ {
		ctl.c.Presenter.Next(readout)
		clock.SleepContext(ctx, ctl.c.Clock, ctl.cfg.ViewInterval)
	}
	ctl.c.Presenter.Prompt()

	ctl.mu.Lock()
	ctl.sess.Reset()
	ctl.mu.Unlock()

	ctl.setState(Idle)
	ctl.notify()
}

func (ctl *Controller) setState(s State) {
	ctl.state.Store(int32(s))
}

func (ctl *Controller) notify() {
	ctl.cbMu.RLock()
	callbacks := make([]func(Snapshot), len(ctl.callbacks))
	copy(callbacks, ctl.callbacks)
	ctl.cbMu.RUnlock()

	if len(callbacks) == 0 {
		return
	}

	snap := ctl.Snapshot()
	for _, cb := range callbacks {
		if cb != nil {
			cb(snap)
		}
	}
}

func formatDerivatives(d2 []float32) string {
	parts := make([]string, len(d2))
	for i, v := range d2 {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, ", ")
}
