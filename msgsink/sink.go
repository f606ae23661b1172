// Package msgsink provides the default pipeline.MessageSink: a
// charmbracelet/log-backed logger that also renders the raw
// timestamp-prefixed plain-text line the core's documented contract
// promises a caller-supplied callback.
package msgsink

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"terminalgl/pipeline"
)

// Sink wraps a charmbracelet/log.Logger and exposes it as a
// pipeline.MessageSink. Severities map onto Info/Warn/Error; nothing a
// core component emits is ever fatal, so there is no Fatal mapping.
type Sink struct {
	logger *log.Logger
}

// New constructs a Sink writing structured, leveled output to w (os.Stderr
// if w is nil) at the given level.
func New(w io.Writer, level log.Level) *Sink {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	logger.SetLevel(level)
	return &Sink{logger: logger}
}

// Handle satisfies pipeline.MessageSink.
func (s *Sink) Handle(sev pipeline.Severity, message string) {
	switch sev {
	case pipeline.SeverityInfo:
		s.logger.Info(message)
	case pipeline.SeverityWarning:
		s.logger.Warn(message)
	case pipeline.SeverityError:
		s.logger.Error(message)
	default:
		s.logger.Info(message)
	}
}

// RawLine renders a message in the byte-for-byte plain-text form a raw
// callback receives: "[MM::DD::YYYY HH::MM::SS] message".
func RawLine(t time.Time, message string) string {
	return fmt.Sprintf("%s %s", pipeline.FormatTimestamp(t), message)
}

// AsCallback adapts Sink into a pipeline.MessageSink function value,
// suitable for Context.SetSink / Options.Sink.
func (s *Sink) AsCallback() pipeline.MessageSink {
	return func(sev pipeline.Severity, message string) {
		s.Handle(sev, message)
	}
}

// SetLevel adjusts the underlying logger's minimum level at runtime.
func (s *Sink) SetLevel(level log.Level) { s.logger.SetLevel(level) }
