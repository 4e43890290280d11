// Package notify is the user-visible error channel.
package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Notifier surfaces a transient message to the user.
type Notifier interface {
	Error(msg string)
}

// Writer prints messages to w (typically stderr) and logs them.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	log *zap.Logger
}

var _ Notifier = (*Writer)(nil)

// NewWriter constructs a Writer notifier.
func NewWriter(w io.Writer, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{w: w, log: log}
}

// Error prints msg and logs it at warn level.
func (n *Writer) Error(msg string) {
	n.log.Warn("user notified", zap.String("msg", msg))
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.w, "error:", msg)
}

// Recorder keeps every message; used by tests and by callers that render later.
type Recorder struct {
	mu   sync.Mutex
	msgs []string
}

var _ Notifier = (*Recorder)(nil)

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}
