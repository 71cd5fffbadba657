package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// Recorder stands in for a *testing.T when a test needs to observe a fatal
// failure instead of suffering it. Fatal records the message and returns,
// so callers must return right after calling it, as envexec does.
type Recorder struct {
	mu       sync.Mutex
	failed   bool
	messages []string
}

// Helper is a no-op.
func (r *Recorder) Helper() {}

// Fatal records a fatal failure.
func (r *Recorder) Fatal(args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failed = true
	r.messages = append(r.messages, fmt.Sprint(args...))
}

// Failed reports whether Fatal was called.
func (r *Recorder) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.failed
}

// Message returns every recorded message joined by newlines.
func (r *Recorder) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return strings.Join(r.messages, "\n")
}
