package logging

import (
	"path/filepath"
	"testing"

	"github.com/mindmapdigital/projectflow/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextAndLevel(t *testing.T) {
	log, err := New(config.LogConfig{Level: "debug", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNew_JSON(t *testing.T) {
	log, err := New(config.LogConfig{Level: "info", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	log, err := New(config.LogConfig{Level: "loud", Format: "text", Output: "stdout"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, err := New(config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)
	log.Info("hello")
	assert.FileExists(t, path)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(config.LogConfig{Level: "info", Format: "xml", Output: "stdout"})
	assert.ErrorContains(t, err, "unsupported log format")

	_, err = New(config.LogConfig{Level: "info", Format: "text", Output: "file"})
	assert.ErrorContains(t, err, "file path")

	_, err = New(config.LogConfig{Level: "info", Format: "text", Output: "socket"})
	assert.ErrorContains(t, err, "unsupported log output")
}
