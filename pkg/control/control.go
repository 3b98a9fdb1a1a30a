package control

import (
	"sync/atomic"
	"time"

	"github.com/itohio/waveid/pkg/clock"
)

// DefaultDebounce is the settle delay after a detected press.
const DefaultDebounce = 200 * time.Millisecond

// Button is a momentary push-button.
type Button interface {
	Pressed() bool
}

// ButtonFunc adapts a read function. For an active-low pin with pull-up:
//
//	control.ButtonFunc(func() bool { return !pin.Get() })
type ButtonFunc func() bool

// Pressed implements Button.
func (f ButtonFunc) Pressed() bool { return f() }

// Latch is a button pressed by an event (GUI click, script) and released by reading it.
type Latch struct {
	pressed atomic.Bool
}

var _ Button = (*Latch)(nil)

// Press latches the button.
func (l *Latch) Press() { l.pressed.Store(true) }

// Pressed reports and clears the latched press.
func (l *Latch) Pressed() bool { return l.pressed.Swap(false) }

// Event is the result of one poll.
type Event int

const (
	None Event = iota
	Start
	Show
)

func (e Event) String() string {
	switch e {
	case Start:
		return "start"
	case Show:
		return "show"
	default:
		return "none"
	}
}

// Input polls the START and SHOW buttons.
type Input struct {
	start    Button
	show     Button
	clk      clock.Clock
	debounce time.Duration
}

// NewInput creates an input controller. A zero debounce uses DefaultDebounce.
func NewInput(start, show Button, clk clock.Clock, debounce time.Duration) *Input {
	if clk == nil {
		clk = clock.Real{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Input{start: start, show: show, clk: clk, debounce: debounce}
}

// Poll checks START, then SHOW. After a press it waits the debounce delay
// before returning, so the same press is not seen twice.
func (in *Input) Poll() Event {
	ev := None
	switch {
	case in.start != nil && in.start.Pressed():
		ev = Start
	case in.show != nil && in.show.Pressed():
		ev = Show
	}
	if ev != None {
		in.clk.Sleep(in.debounce)
	}
	return ev
}

// StartPressed reads START without debouncing. The presentation loop uses it to abort.
func (in *Input) StartPressed() bool {
	return in.start != nil && in.start.Pressed()
}
