package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debug("copied", zap.String("path", "pubspec.yaml"))
	log.Warn("copy failed", zap.String("path", "lib/main.dart"))

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "copied")
	assert.Contains(t, out, `"path": "pubspec.yaml"`)
	assert.Contains(t, out, "WARN")
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug("copied")
	log.Warn("copy failed")
	assert.Empty(t, buf.String())

	log.Error("boom")
	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "boom")
}
