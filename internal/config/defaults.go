package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Port:          60006,
			VolumeControl: "external",
			Timeout:       10,
		},
		Poll: PollConfig{
			Interval: 5000,
		},
		TUI: TUIConfig{
			Theme: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Device
	if c.Device.Port == 0 {
		c.Device.Port = d.Device.Port
	}
	if c.Device.VolumeControl == "" {
		c.Device.VolumeControl = d.Device.VolumeControl
	}
	if c.Device.Timeout == 0 {
		c.Device.Timeout = d.Device.Timeout
	}

	// Poll
	if c.Poll.Interval == 0 {
		c.Poll.Interval = d.Poll.Interval
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
