// Package config loads aiosctl settings from TOML, .env and the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.aiosrc, $XDG_CONFIG_HOME/aiosctl/config.toml, ~/.config/aiosctl/config.toml
func Load() (*Config, error) {
	return load(FindConfigFile())
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return load(path)
}

func load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	// A missing .env is not an error
	_ = godotenv.Load()

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// FindConfigFile returns the first existing config file path, or "".
func FindConfigFile() string {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where config init writes a new file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aiosrc"
	}
	return filepath.Join(home, ".aiosrc")
}

func searchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	paths := []string{
		filepath.Join(home, ".aiosrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return append(paths, filepath.Join(xdgConfig, "aiosctl", "config.toml"))
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Device
	if v := os.Getenv("AIOS_HOST"); v != "" {
		cfg.Device.Host = v
	}
	if v := os.Getenv("AIOS_PORT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Device.Port = i
		}
	}
	if v := os.Getenv("AIOS_VOLUME_CONTROL"); v != "" {
		cfg.Device.VolumeControl = v
	}
	if v := os.Getenv("AIOS_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Device.Timeout = i
		}
	}

	// Poll
	if v := os.Getenv("AIOS_POLL_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Poll.Interval = i
		}
	}

	// TUI
	if v := os.Getenv("AIOS_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}

	// Log
	if v := os.Getenv("AIOS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AIOS_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

const fileHeader = "# aiosctl configuration\n\n"

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg any) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

// WriteFile writes cfg to path with a header comment, creating parent
// directories as needed.
func WriteFile(path string, cfg any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.WriteString(f, fileHeader); err != nil {
		return err
	}
	if err := Encode(f, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

var intKeys = map[string]bool{
	"device.port":    true,
	"device.timeout": true,
	"poll.interval":  true,
}

var knownKeys = map[string]bool{
	"device.host":           true,
	"device.port":           true,
	"device.volume_control": true,
	"device.timeout":        true,
	"poll.interval":         true,
	"tui.theme":             true,
	"log.level":             true,
	"log.file":              true,
}

// Set updates one "section.key" value in the file at path and validates the
// result before writing it back.
func Set(path, key, value string) error {
	if !knownKeys[key] {
		return fmt.Errorf("unknown key %q", key)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := raw[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		raw[section] = sectionMap
	}

	if intKeys[key] {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value must be an integer for %s", key)
		}
		sectionMap[field] = i
	} else {
		sectionMap[field] = value
	}

	// Round-trip through Config to validate the new value
	var buf strings.Builder
	if err := Encode(&buf, raw); err != nil {
		return err
	}
	var check Config
	if _, err := toml.Decode(buf.String(), &check); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := check.Validate(); err != nil {
		return err
	}

	return WriteFile(path, raw)
}
