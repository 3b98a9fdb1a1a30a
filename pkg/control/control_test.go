package control

import (
	"testing"
	"time"

	"github.com/itohio/waveid/pkg/clock"
	"github.com/stretchr/testify/assert"
)

func TestLatch(t *testing.T) {
	var l Latch
	assert.False(t, l.Pressed())

	l.Press()
	assert.True(t, l.Pressed())
	assert.False(t, l.Pressed(), "reading releases the latch")
}

func TestButtonFunc_ActiveLow(t *testing.T) {
	level := true // pull-up: released reads high
	b := ButtonFunc(func() bool { return !level })

	assert.False(t, b.Pressed())
	level = false
	assert.True(t, b.Pressed())
}

func TestInput_Poll(t *testing.T) {
	tests := []struct {
		name      string
		start     bool
		show      bool
		want      Event
		wantSlept time.Duration
	}{
		{name: "idle", want: None},
		{name: "start", start: true, want: Start, wantSlept: DefaultDebounce},
		{name: "show", show: true, want: Show, wantSlept: DefaultDebounce},
		{name: "start wins", start: true, show: true, want: Start, wantSlept: DefaultDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clock.NewSim(time.Unix(0, 0))
			var start, show Latch
			if tt.start {
				start.Press()
			}
			if tt.show {
				show.Press()
			}

			in := NewInput(&start, &show, clk, 0)
			assert.Equal(t, tt.want, in.Poll())
			assert.Equal(t, tt.wantSlept, clk.Slept())
		})
	}
}

func TestInput_CustomDebounce(t *testing.T) {
	clk := clock.NewSim(time.Unix(0, 0))
	var show Latch
	show.Press()

	in := NewInput(nil, &show, clk, 50*time.Millisecond)
	assert.Equal(t, Show, in.Poll())
	assert.Equal(t, 50*time.Millisecond, clk.Slept())
	assert.False(t, in.StartPressed(), "nil start button is never pressed")
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "start", Start.String())
	assert.Equal(t, "show", Show.String())
	assert.Equal(t, "none", None.String())
}
