package session

import (
	"github.com/itohio/waveid/pkg/acquire"
	"github.com/itohio/waveid/pkg/classify"
	"github.com/itohio/waveid/pkg/sample"
)

// Session is the state of one acquisition cycle. It is passed explicitly
// through acquire, classify and present; nothing here is global.
type Session struct {
	Buffer *sample.Buffer
	Stats  acquire.Stats
	Result classify.Result
	Ready  bool // an acquisition completed and was not presented yet
}

// New allocates a session for buffers of capacity samples.
func New(capacity int) (*Session, error) {
	buf, err := sample.NewBuffer(capacity)
	if err != nil {
		return nil, err
	}
	return &Session{Buffer: buf, Stats: acquire.NewStats()}, nil
}

// Reset clears extrema and crossing state after results were presented.
func (s *Session) Reset() {
	s.Stats.Reset()
	s.Ready = false
}

// Clear discards samples and all statistics.
func (s *Session) Clear() {
	s.Buffer.Reset()
	s.Stats = acquire.NewStats()
	s.Result = classify.Result{}
	s.Ready = false
}
