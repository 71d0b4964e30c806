package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, New(false).GetLevel())
	assert.Equal(t, logrus.DebugLevel, New(true).GetLevel())
}

func TestErrorFileHookCapturesErrorsOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "error.log")

	log := New(false)
	log.SetOutput(io.Discard)
	require.NoError(t, AttachErrorFile(log, path))

	log.Info("routine message")
	log.WithField("question", "q1").Error("retrieval failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "retrieval failed")
	assert.Contains(t, content, "question=q1")
	assert.NotContains(t, content, "routine message")
}

func TestErrorFileAppendsAcrossAttaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "error.log")

	first := New(false)
	first.SetOutput(io.Discard)
	require.NoError(t, AttachErrorFile(first, path))
	first.Error("first run")

	second := New(false)
	second.SetOutput(io.Discard)
	require.NoError(t, AttachErrorFile(second, path))
	second.Error("second run")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}
