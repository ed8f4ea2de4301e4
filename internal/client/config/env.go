package config

import (
	"log"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIURL         = "HNS_API_URL"
	envDBPath         = "HNS_DB_PATH"
	envRequestTimeout = "HNS_REQUEST_TIMEOUT"
	envLogLevel       = "HNS_LOG_LEVEL"
	envTitleLookup    = "HNS_TITLE_LOOKUP"
)

// dotenvFiles are loaded into the process environment before it is read.
// Variables that are already set are not overridden.
var dotenvFiles = []string{".env"}

// parseEnv overlays cfg with HNS_* variables. Unparseable values are
// logged and skipped so a stray variable cannot stop the client.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	_ = godotenv.Load(dotenvFiles...)

	if v, ok := lookup(envAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(envDBPath); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(envRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("config: ignoring %s=%q: %v", envRequestTimeout, v, err)
		} else {
			cfg.RequestTimeout = d
		}
	}
	if v, ok := lookup(envTitleLookup); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("config: ignoring %s=%q: %v", envTitleLookup, v, err)
		} else {
			cfg.TitleLookup = b
		}
	}
}
