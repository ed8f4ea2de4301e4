package config

import (
	"os"
	"time"
)

const (
	DefaultAPIBaseURL     = "https://hack-or-snooze-v3.herokuapp.com"
	DefaultDatabasePath   = "~/.hackorsnooze/session.db"
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogLevel       = "warn"
)

// Config holds runtime settings for the hackorsnooze CLI.
//
// Fields:
//   - APIBaseURL: root URL of the remote story/user service.
//   - DatabasePath: SQLite file holding the remembered credentials.
//   - RequestTimeout: per-request deadline for remote calls; 0 means none.
//   - LogLevel: minimum level written to stderr.
//   - TitleLookup: fetch a page title when a story is submitted without one.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
	TitleLookup    bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DatabasePath = DefaultDatabasePath
	c.RequestTimeout = DefaultRequestTimeout
	c.LogLevel = DefaultLogLevel
	c.TitleLookup = true
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, the config file (if any) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, os.LookupEnv)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
