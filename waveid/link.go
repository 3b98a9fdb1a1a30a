package main

import (
	"context"
	"errors"
	"sync"

	"github.com/itohio/waveid/pkg/device"
)

// link owns the device and the controller loop running on it.
type link struct {
	mu      sync.Mutex
	device  device.Device
	station *station
	cancel  context.CancelFunc
	done    chan struct{} // Closed when the controller loop exits
}

// start runs the controller of st on dev until stop is called or the loop
// fails. onExit receives failures other than cancellation and a closed device.
// A previous loop is torn down first, including one that already exited.
func (l *link) start(dev device.Device, st *station, onExit func(error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := st.ctl.Run(ctx)
		if onExit != nil && err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, device.ErrClosed) {
			onExit(err)
		}
	}()

	l.device = dev
	l.station = st
	l.cancel = cancel
	l.done = done
}

// running reports whether the controller loop is still active.
func (l *link) running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

// stop ends the controller loop and closes the device.
func (l *link) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

// stopLocked waits for the loop to exit so the diagnostic stream is complete.
func (l *link) stopLocked() {
	if l.cancel == nil {
		return
	}

	l.cancel()
	// Unblocks a pending read with device.ErrClosed
	l.device.Close()
	<-l.done
	l.station.close()

	l.device = nil
	l.station = nil
	l.cancel = nil
	l.done = nil
}
