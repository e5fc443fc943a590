// Package config provides configuration loading for textbrowse using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Fetcher settings
type Fetcher struct {
	UserAgent string `toml:"userAgent"`
}

// Rendering settings
type Rendering struct {
	Wrap  bool `toml:"wrap"`  // Wrap rendered text to the terminal width
	Width int  `toml:"width"` // Wrap width when stdout is not a terminal
}

// Logging settings
type Logging struct {
	Level string `toml:"level"` // zerolog level name: debug, info, warn, error
}

// Config is the main configuration struct
type Config struct {
	Fetcher   Fetcher   `toml:"fetcher"`
	Rendering Rendering `toml:"rendering"`
	Logging   Logging   `toml:"logging"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Fetcher: Fetcher{
			UserAgent: "textbrowse/1.0",
		},
		Rendering: Rendering{
			Wrap:  false,
			Width: 80,
		},
		Logging: Logging{
			Level: "warn",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textbrowse"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering the user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile layers the TOML file at path on top of defaults. Unlike Load,
// a missing file is an error.
func LoadFile(path string) (*Config, error) {
	userCfg, err := loadFromTOML(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return merge(Default(), userCfg), nil
}

func loadFromTOML(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return &cfg, nil
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}

	// false cannot be told apart from unset, so wrap can only be turned on
	if user.Rendering.Wrap {
		result.Rendering.Wrap = true
	}
	if user.Rendering.Width > 0 {
		result.Rendering.Width = user.Rendering.Width
	}

	if user.Logging.Level != "" {
		result.Logging.Level = user.Logging.Level
	}

	return &result
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# textbrowse configuration
# Save to ~/.config/textbrowse/config.toml and customize
# Only include settings you want to change from defaults

[fetcher]
userAgent = "textbrowse/1.0"

[rendering]
wrap = false                  # Wrap rendered text to the terminal width
width = 80                    # Wrap width when stdout is not a terminal

[logging]
level = "warn"                # debug, info, warn or error
`
}
