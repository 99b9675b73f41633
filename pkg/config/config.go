// Package config provides the application configuration
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"counter-terminal/pkg/tui"
)

const (
	// AppName is the program name used for the data directory and log file
	AppName = "counter-terminal"

	// EnvDataDir overrides the data directory
	EnvDataDir = "COUNTER_TERMINAL_DATA"
	// EnvLogLevel sets the log level when no flag is given
	EnvLogLevel = "COUNTER_TERMINAL_LOG_LEVEL"
)

// AppConfig contains all settings of one run
type AppConfig struct {
	TickRate    float64 `json:"tick_rate"`
	FrameRate   float64 `json:"frame_rate"`
	EnableMouse bool    `json:"enable_mouse"`
	EnablePaste bool    `json:"enable_paste"`
	LogLevel    string  `json:"log_level"`
	DataDir     string  `json:"data_dir"`
}

// DefaultAppConfig returns the default configuration
func DefaultAppConfig() AppConfig {
	return AppConfig{
		TickRate:  4,
		FrameRate: 60,
		LogLevel:  "info",
		DataDir:   DefaultDataDir(),
	}
}

// Validate checks if the configuration is valid
func (c AppConfig) Validate() error {
	if err := c.Tui().Validate(); err != nil {
		return err
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	return nil
}

// Tui returns the terminal controller settings
func (c AppConfig) Tui() tui.Config {
	return tui.Config{
		TickRate:    c.TickRate,
		FrameRate:   c.FrameRate,
		EnableMouse: c.EnableMouse,
		EnablePaste: c.EnablePaste,
	}
}

// LogPath returns the log file location inside the data directory
func (c AppConfig) LogPath() string {
	return filepath.Join(c.DataDir, AppName+".log")
}

// ApplyEnv fills settings that were not given explicitly from the
// environment. explicit reports whether a setting came from a flag.
func (c *AppConfig) ApplyEnv(getenv func(string) string, explicit func(name string) bool) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if explicit == nil {
		explicit = func(string) bool { return false }
	}

	if v := getenv(EnvDataDir); v != "" && !explicit("data-dir") {
		c.DataDir = v
	}
	if v := getenv(EnvLogLevel); v != "" && !explicit("log-level") {
		c.LogLevel = v
	}
}

// DefaultDataDir resolves the data directory: $COUNTER_TERMINAL_DATA, then
// the XDG data home, then ./.data when no home directory is known.
func DefaultDataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", ".data")
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// ParseLogLevel converts a level name into a slog level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", level)
	}
}

// String returns a summary for logs and the version command
func (c AppConfig) String() string {
	return fmt.Sprintf("tick=%gHz frame=%gHz mouse=%t paste=%t log=%s data=%s",
		c.TickRate, c.FrameRate, c.EnableMouse, c.EnablePaste, c.LogLevel, c.DataDir)
}
