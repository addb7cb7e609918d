package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, false)

	l.Debug("hidden debug", nil)
	l.Info("hidden info", nil)
	l.Warn("visible warning", map[string]interface{}{"path": "/tmp/x"})
	l.Error("visible error", errors.New("boom"), nil)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "path=/tmp/x")
	assert.Contains(t, out, "error=boom")
}

func TestLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, true)

	l.Debug("debug line", map[string]interface{}{"verb": "sim"})
	assert.Contains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "verb=sim")
}
