package config

import "time"

// Config holds the full TaskForge configuration.
type Config struct {
	// Store configures where the task file lives.
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Sweep configures the background expiry pass.
	Sweep SweepConfig `yaml:"sweep" mapstructure:"sweep"`

	// RunLog configures the timer run history database.
	RunLog RunLogConfig `yaml:"runlog" mapstructure:"runlog"`

	// Log configures application logging.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Web configures the read-only HTTP view.
	Web WebConfig `yaml:"web" mapstructure:"web"`
}

// StoreConfig locates the task document.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// SweepConfig controls the expiry sweeper.
type SweepConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// RunLogConfig controls the timer run history.
type RunLogConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	// File, when set, mirrors logs to a rotated JSON log file.
	File string `yaml:"file" mapstructure:"file"`
}

// WebConfig controls the HTTP view started by `taskforge serve`.
type WebConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// Default returns the built-in configuration: task file and run log in
// the working directory, sweep every minute.
func Default() *Config {
	return &Config{
		Store:  StoreConfig{Path: "tasks.yaml"},
		Sweep:  SweepConfig{Enabled: true, Interval: 60 * time.Second},
		RunLog: RunLogConfig{Enabled: true, Path: "taskforge.db"},
		Log:    LogConfig{Level: "info"},
		Web:    WebConfig{Addr: "127.0.0.1:8087"},
	}
}
