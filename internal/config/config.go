// Package config provides configuration management for the ShootSync agent.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// Default values
	DefaultPort         = 8790
	DefaultLogLevel     = "info"
	DefaultDataDir      = ".shootsync"
	DefaultPollInterval = 2 * time.Second

	// Environment variable names
	EnvPort         = "SHOOTSYNC_PORT"
	EnvLogLevel     = "SHOOTSYNC_LOG_LEVEL"
	EnvDataDir      = "SHOOTSYNC_DATA_DIR"
	EnvRulesFile    = "SHOOTSYNC_RULES_FILE"
	EnvPollInterval = "SHOOTSYNC_POLL_INTERVAL"

	// Database filename
	DBFilename = "shootsync.db"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	RulesFile() string
	PollInterval() time.Duration
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port         int
	logLevel     string
	dataDir      string
	rulesFile    string
	pollInterval time.Duration
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:         DefaultPort,
		logLevel:     DefaultLogLevel,
		dataDir:      defaultDataDir(),
		pollInterval: DefaultPollInterval,
	}

	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	cfg.rulesFile = os.Getenv(EnvRulesFile)

	if pi := os.Getenv(EnvPollInterval); pi != "" {
		d, err := time.ParseDuration(pi)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPollInterval, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid %s: interval must be positive", EnvPollInterval)
		}
		cfg.pollInterval = d
	}

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// RulesFile returns the path to the classification rules file.
// Empty means the built-in defaults are used.
func (c *EnvConfig) RulesFile() string {
	return c.rulesFile
}

// PollInterval returns how often the run executor checks for pending runs
func (c *EnvConfig) PollInterval() time.Duration {
	return c.pollInterval
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
