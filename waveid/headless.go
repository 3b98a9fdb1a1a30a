package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/itohio/waveid/pkg/clock"
	"github.com/itohio/waveid/pkg/config"
	"github.com/itohio/waveid/pkg/control"
	"github.com/itohio/waveid/pkg/device"
	"github.com/itohio/waveid/pkg/display"
	"github.com/itohio/waveid/pkg/scope"
	"github.com/itohio/waveid/pkg/session"
)

// frameDisplay prints every completed LCD screen to out.
// A screen is complete when the next Clear arrives or Flush is called.
type frameDisplay struct {
	text  *display.Text
	out   io.Writer
	dirty bool
	err   error
}

var _ display.Display = (*frameDisplay)(nil)

func newFrameDisplay(out io.Writer) *frameDisplay {
	return &frameDisplay{text: display.NewText(display.Columns, display.Rows), out: out}
}

func (f *frameDisplay) Clear() {
	f.Flush()
	f.text.Clear()
}

func (f *frameDisplay) SetCursor(col, row int) {
	f.text.SetCursor(col, row)
}

func (f *frameDisplay) Print(text string) {
	f.text.Print(text)
	f.dirty = true
}

// Flush writes the pending screen, if any.
func (f *frameDisplay) Flush() {
	if !f.dirty {
		return
	}
	f.dirty = false
	if _, err := io.WriteString(f.out, f.text.String()); err != nil && f.err == nil {
		f.err = err
	}
}

// runHeadless performs one START/SHOW cycle against dev and prints the LCD
// frames followed by a summary line.
func runHeadless(ctx context.Context, cfg *config.Config, dev device.Device, out io.Writer) error {
	return runHeadlessWith(ctx, cfg, dev, clock.Real{}, out, os.Stderr)
}

func runHeadlessWith(ctx context.Context, cfg *config.Config, dev device.Device, clk clock.Clock, out, diagOut io.Writer) error {
	if err := dev.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer dev.Close()

	frames := newFrameDisplay(out)
	var start, show control.Latch

	st, err := newStation(cfg, device.NewChannel(dev), clk, frames, &start, &show, diagOut)
	if err != nil {
		return err
	}
	defer st.close()

	// Callbacks run on this goroutine.
	var presented session.Snapshot
	st.ctl.OnUpdate(func(snap session.Snapshot) {
		if snap.State == session.Presenting {
			presented = snap
		}
	})

	start.Press()
	for !st.ctl.Snapshot().Ready {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := st.ctl.Tick(ctx); err != nil {
			return err
		}
	}

	show.Press()
	if err := st.ctl.Tick(ctx); err != nil {
		return err
	}
	frames.Flush()
	if frames.err != nil {
		return fmt.Errorf("failed to write frames: %w", frames.err)
	}

	if _, err := fmt.Fprintln(out, scope.Info(presented)); err != nil {
		return err
	}
	return ctx.Err()
}
