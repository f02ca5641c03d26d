// Package config loads todos settings.
//
// The file lives at $XDG_CONFIG_HOME/todos/config.yaml, falling back to
// ~/.config/todos/config.yaml. Every key is optional.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var themes = []string{"classic", "neon", "mono"}

// Config is the top-level configuration.
type Config struct {
	Theme     string `yaml:"theme,omitempty"` // classic, neon, mono
	Color     string `yaml:"color,omitempty"` // auto, always, never
	Markdown  bool   `yaml:"markdown"`        // render notes with glamour in the details view
	AltScreen bool   `yaml:"alt_screen"`      // TUI takes over the whole terminal
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		Theme:     "classic",
		Color:     ColorAuto,
		Markdown:  true,
		AltScreen: true,
	}
}

// ConfigDir returns the XDG config directory for todos.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "todos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "todos")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields. Empty values mean "use the default".
func (c Config) Validate() error {
	if c.Theme != "" && !contains(themes, c.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(themes, ", "))
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q (want auto, always or never)", c.Color)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
