package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Device DeviceConfig `toml:"device" json:"device"`
	Poll   PollConfig   `toml:"poll" json:"poll"`
	TUI    TUIConfig    `toml:"tui" json:"tui"`
	Log    LogConfig    `toml:"log" json:"log"`
}

// DeviceConfig holds receiver connection settings.
type DeviceConfig struct {
	Host          string `toml:"host" json:"host"`
	Port          int    `toml:"port" json:"port"`
	VolumeControl string `toml:"volume_control" json:"volume_control"`
	// Timeout is the shared HTTP client timeout in seconds.
	Timeout int `toml:"timeout" json:"timeout"`
}

// TimeoutDuration returns Timeout as a duration.
func (c DeviceConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// PollConfig holds settings for watch mode and the dashboard.
type PollConfig struct {
	// Interval is in milliseconds.
	Interval int `toml:"interval" json:"interval"`
}

// IntervalDuration returns Interval as a duration.
func (c PollConfig) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Millisecond
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `toml:"theme" json:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}
