package msgsink

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"terminalgl/pipeline"
)

func TestSinkRoutesSeverity(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, log.DebugLevel)

	s.Handle(pipeline.SeverityInfo, "started")
	s.Handle(pipeline.SeverityWarning, "stack overflow")
	s.Handle(pipeline.SeverityError, "allocation failed")

	out := buf.String()
	assert.Contains(t, out, "started")
	assert.Contains(t, out, "stack overflow")
	assert.Contains(t, out, "allocation failed")
}

func TestAsCallbackMatchesHandle(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, log.InfoLevel)
	cb := s.AsCallback()
	cb(pipeline.SeverityInfo, "via callback")
	assert.Contains(t, buf.String(), "via callback")
}

func TestRawLineFormat(t *testing.T) {
	ts := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)
	line := RawLine(ts, "hello")
	assert.Equal(t, "[03::05::2026 14::30::00] hello", line)
}
