package device

import (
	"context"

	"github.com/itohio/waveid/pkg/acquire"
)

// Channel reads a Device's sample stream as an acquire.Channel.
// Read blocks until the device delivers the next sample, so the engine
// should run with a zero interval and let the device pace acquisition.
type Channel struct {
	dev Device
}

var (
	_ acquire.Channel = (*Channel)(nil)
	_ acquire.Flusher = (*Channel)(nil)
)

// NewChannel wraps dev.
func NewChannel(dev Device) *Channel {
	return &Channel{dev: dev}
}

// Read returns the next sample, ErrClosed once the stream has ended, or ctx.Err().
func (c *Channel) Read(ctx context.Context) (acquire.Reading, error) {
	select {
	case <-ctx.Done():
		return acquire.Reading{}, ctx.Err()
	case s, ok := <-c.dev.Samples():
		if !ok {
			return acquire.Reading{}, ErrClosed
		}
		return acquire.Reading{Value: s.Value, At: s.Timestamp}, nil
	}
}

// Flush discards the samples queued while nobody was reading.
func (c *Channel) Flush() {
	ch := c.dev.Samples()
	for n := len(ch); n > 0; n-- {
		if _, ok := <-ch; !ok {
			return
		}
	}
}
