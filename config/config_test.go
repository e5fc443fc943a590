package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[fetcher]
userAgent = "custom/9"

[rendering]
wrap = true
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom/9", cfg.Fetcher.UserAgent)
	assert.True(t, cfg.Rendering.Wrap)
	assert.Equal(t, 80, cfg.Rendering.Width, "unset width keeps default")
	assert.Equal(t, "warn", cfg.Logging.Level, "unset level keeps default")
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "[fetcher\nuserAgent = 1"))
	assert.ErrorContains(t, err, "parsing config TOML")

	_, err = LoadFile(writeConfig(t, "[fetcher]\nuserAgnet = \"typo\"\n"))
	assert.ErrorContains(t, err, "unknown config key")
}

func TestLoadWithoutUserConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "textbrowse")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[logging]\nlevel = \"debug\"\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestDefaultTOMLMatchesDefault(t *testing.T) {
	var cfg Config
	_, err := toml.Decode(DefaultTOML(), &cfg)
	require.NoError(t, err)
	assert.Equal(t, *Default(), cfg)
}
