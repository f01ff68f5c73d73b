package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.DefaultEngine)
	require.Contains(t, cfg.Engines, "claude")
	assert.Equal(t, "claude", cfg.Engines["claude"].Binary)
	assert.Equal(t, ":8585", cfg.Gateway.Addr)
	assert.NotEmpty(t, cfg.DB.Path)
	assert.False(t, cfg.Trace.Enabled)
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	content := `
default_engine = "openai"

[engine.openai]
type = "openai"
base_url = "http://localhost:11434/v1"
api_key = "test-key"

[models]
balanced = "sonnet-pinned"

[gateway]
addr = ":9999"
token = "hunter2"

[role.launch]
system_prompt = "You research product launches."
tools = ["WebSearch"]
depth = "comprehensive"

[services.brave]
api_key = "brave-key"
`
	path := filepath.Join(dir, "scout", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.DefaultEngine)
	require.Contains(t, cfg.Engines, "openai")
	assert.Equal(t, "http://localhost:11434/v1", cfg.Engines["openai"].BaseURL)
	assert.Equal(t, "sonnet-pinned", cfg.Models.Balanced)
	assert.Equal(t, ":9999", cfg.Gateway.Addr)
	assert.Equal(t, "hunter2", cfg.Gateway.Token)
	assert.Equal(t, "brave-key", cfg.Services.Brave.APIKey)

	require.Contains(t, cfg.Roles, "launch")
	assert.Equal(t, "comprehensive", cfg.Roles["launch"].Depth)
	assert.Equal(t, []string{"WebSearch"}, cfg.Roles["launch"].Tools)

	// Defaults survive a partial file.
	require.Contains(t, cfg.Engines, "claude")
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "scout", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("default_engine = ["), 0o600))

	_, err := Load()
	assert.Error(t, err)
}
