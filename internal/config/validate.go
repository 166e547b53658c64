package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Device.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("device: %w", err))
	}
	if err := c.Poll.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("poll: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks DeviceConfig for errors. An empty host is allowed here;
// commands that talk to the device report it.
func (c *DeviceConfig) Validate() error {
	var errs []error
	if c.Host != "" {
		if strings.Contains(c.Host, "://") || strings.Contains(c.Host, "/") {
			errs = append(errs, fmt.Errorf("invalid host: %s (use a hostname or IP address, not a URL)", c.Host))
		} else if _, _, err := net.SplitHostPort(c.Host); err == nil {
			errs = append(errs, fmt.Errorf("invalid host: %s (set the port with device.port)", c.Host))
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, errors.New("port must be between 1 and 65535"))
	}
	switch c.VolumeControl {
	case "", "external", "internal":
		// valid
	default:
		errs = append(errs, fmt.Errorf("invalid volume_control: %s (must be external or internal)", c.VolumeControl))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must be non-negative"))
	}
	return errors.Join(errs...)
}

// Validate checks PollConfig for errors.
func (c *PollConfig) Validate() error {
	if c.Interval < 0 {
		return errors.New("interval must be non-negative")
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
