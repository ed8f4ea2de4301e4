package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/flagx"
	"github.com/dmitrijs2005/hackorsnooze/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the DTO decoded from a JSON or YAML config file. Pointer
// fields distinguish "absent" from zero values so only keys present in the
// file override earlier sources.
type FileConfig struct {
	APIBaseURL     string          `json:"api_base_url" yaml:"api_base_url"`
	DatabasePath   string          `json:"database_path" yaml:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string          `json:"log_level" yaml:"log_level"`
	TitleLookup    *bool           `json:"title_lookup" yaml:"title_lookup"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on
// read or decode errors, like parseFlags does on bad flags.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func decodeFile(path string, data []byte) (FileConfig, error) {
	var fc FileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fc, err
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return fc, err
		}
	}
	return fc, nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.TitleLookup != nil {
		cfg.TitleLookup = *fc.TitleLookup
	}
}
