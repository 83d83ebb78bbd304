package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Severity classifies a user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient message for the user.
type Notification struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	At       time.Time `json:"at"`
}

// Notifier delivers user-facing messages.
type Notifier interface {
	Notify(message string, severity Severity)
}

// LogNotifier forwards notifications to logrus.
type LogNotifier struct{}

func (LogNotifier) Notify(message string, severity Severity) {
	entry := logrus.WithField("severity", severity)
	switch severity {
	case SeverityError:
		entry.Error(message)
	case SeverityWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// TerminalNotifier prints coloured notifications.
type TerminalNotifier struct {
	Out io.Writer
}

var severityColors = map[Severity]*color.Color{
	SeverityInfo:    color.New(color.FgCyan),
	SeveritySuccess: color.New(color.FgGreen),
	SeverityWarning: color.New(color.FgYellow),
	SeverityError:   color.New(color.FgRed, color.Bold),
}

func (n TerminalNotifier) Notify(message string, severity Severity) {
	out := n.Out
	if out == nil {
		out = os.Stderr
	}
	c, ok := severityColors[severity]
	if !ok {
		c = severityColors[SeverityInfo]
	}
	_, _ = c.Fprintln(out, message)
}

// Recorder queues notifications until they are drained.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
	limit int
	now   func() time.Time
}

// NewRecorder keeps at most limit pending notifications, dropping the oldest.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit, now: time.Now}
}

func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Message: message, Severity: severity, At: r.now()})
	if r.limit > 0 && len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
}

// Drain returns and clears the pending notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// MultiNotifier fans out to several notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(message string, severity Severity) {
	for _, n := range m {
		n.Notify(message, severity)
	}
}
