package main

import (
	"fmt"
	"io"
	"log"

	"github.com/itohio/waveid/pkg/acquire"
	"github.com/itohio/waveid/pkg/clock"
	"github.com/itohio/waveid/pkg/config"
	"github.com/itohio/waveid/pkg/control"
	"github.com/itohio/waveid/pkg/diag"
	"github.com/itohio/waveid/pkg/display"
	"github.com/itohio/waveid/pkg/session"
)

// station wires the acquisition chain behind one controller.
type station struct {
	ctl  *session.Controller
	diag *diag.Logger // nil when diagnostics are disabled
}

// newStation builds the controller for ch. The device paces acquisition on
// the host, so the configured batch interval is not applied here.
func newStation(cfg *config.Config, ch acquire.Channel, clk clock.Clock, d display.Display, start, show control.Button, diagOut io.Writer) (*station, error) {
	ecfg, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	ecfg.Interval = 0

	est, err := cfg.Estimator()
	if err != nil {
		return nil, err
	}
	cls, err := cfg.NewClassifier()
	if err != nil {
		return nil, err
	}
	labels, err := cfg.Labels()
	if err != nil {
		return nil, err
	}

	st := &station{}
	var (
		opts   []acquire.Option
		logger acquire.Logger
	)
	if cfg.Diagnostics.Enabled && diagOut != nil {
		st.diag = diag.New(diagOut, cfg.Diagnostics.Buffer)
		opts = append(opts, acquire.WithLogger(st.diag))
		logger = st.diag
	}

	eng, err := acquire.New(ecfg, ch, clk, est, opts...)
	if err != nil {
		st.close()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	st.ctl, err = session.NewController(cfg.ControllerConfig(), session.Components{
		Engine:     eng,
		Classifier: cls,
		Presenter:  display.NewPresenter(d, labels),
		Input:      control.NewInput(start, show, clk, cfg.Controls.Debounce),
		Clock:      clk,
		Log:        logger,
	})
	if err != nil {
		st.close()
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	return st, nil
}

// close flushes the diagnostic stream.
func (s *station) close() {
	if s.diag == nil {
		return
	}
	s.diag.Close()
	if n := s.diag.Dropped(); n > 0 {
		log.Printf("Diagnostic stream dropped %d lines", n)
	}
}
