package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/simbot/config"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestNewConsoleLogger(t *testing.T) {
	log, err := New(config.LogConfig{Level: "info", Format: "console", Environment: "dev"})
	require.NoError(t, err)
	log.Info("hello")
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "simbot.log")

	log, err := New(config.LogConfig{Level: "debug", Format: "json", Environment: "prod", OutputFile: path})
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync() // stdout sync can fail on some platforms; the file matters

	assert.FileExists(t, path)
}
