// Package config loads runtime configuration for the hackorsnooze CLI.
//
// Sources & precedence (later sources override earlier ones)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if present, and the process
//     environment (HNS_API_URL, HNS_DB_PATH, HNS_REQUEST_TIMEOUT,
//     HNS_LOG_LEVEL, HNS_TITLE_LOOKUP).
//  3. An optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the Hack-or-Snooze API
//	-d string   path of the local session database
//	-t int      request timeout in seconds (0 disables it)
//	-l string   log level: error, warn, info, debug
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "30s" or integer
// nanoseconds:
//
//	api_base_url: https://hack-or-snooze-v3.herokuapp.com
//	database_path: ~/.hackorsnooze/session.db
//	request_timeout: 30s
//	log_level: warn
//	title_lookup: true
package config
