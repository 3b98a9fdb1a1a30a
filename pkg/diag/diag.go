package diag

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the default number of queued lines.
const DefaultBufferSize = 256

// Logger writes diagnostic lines to a writer from a background goroutine.
// Logf never blocks: when the queue is full the line is dropped and counted.
// Lines that are written keep their submission order.
//
// A nil *Logger is valid and discards everything.
type Logger struct {
	lines   chan string
	w       io.Writer
	done    chan struct{}
	dropped atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

// New starts a logger writing to w.
func New(w io.Writer, bufSize int) *Logger {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	l := &Logger{
		lines: make(chan string, bufSize),
		w:     w,
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Logger) run() {
	defer close(l.done)
	for line := range l.lines {
		// Write errors are ignored: the log is fire-and-forget.
		io.WriteString(l.w, line)
	}
}

// Logf formats a line (a trailing newline is added) and queues it.
func (l *Logger) Logf(format string, args ...any) {
	if l == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		l.dropped.Add(1)
		return
	}

	select {
	case l.lines <- fmt.Sprintf(format, args...) + "\n":
	default:
		l.dropped.Add(1)
	}
}

// Dropped returns the number of lines discarded because the queue was full or closed.
func (l *Logger) Dropped() uint64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Close flushes queued lines and stops the writer goroutine.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.lines)
	l.mu.Unlock()

	<-l.done
	return nil
}
