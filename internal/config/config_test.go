package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "projectflow.db", cfg.DBPath)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.Endpoint)
	assert.Equal(t, "gpt-4", cfg.LLM.Model)
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, map[string]int{"basic": 5, "pro": 12}, cfg.Credits.Plans)
	assert.Equal(t, 2000, cfg.Autosave.DelayMs)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9090"
auth:
  jwt_secret: "s3cret"
  webhook_secret: "wh-s3cret"
credits:
  plans:
    basic: 3
    pro: 20
  whitelist:
    - vip@example.com
log:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, map[string]int{"basic": 3, "pro": 20}, cfg.Credits.Plans)
	assert.Equal(t, []string{"vip@example.com"}, cfg.Credits.Whitelist)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "gpt-4", cfg.LLM.Model, "defaults survive partial files")
	require.NoError(t, cfg.ValidateForServe())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateForServe(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.ValidateForServe(), "jwt_secret")

	cfg.Auth.JWTSecret = "a"
	cfg.Auth.WebhookSecret = "b"
	assert.NoError(t, cfg.ValidateForServe())

	cfg.Log.Output = "file"
	assert.ErrorContains(t, cfg.ValidateForServe(), "file_path")
}
