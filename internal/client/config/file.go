package config

import (
	"os"

	"github.com/dmitrijs2005/modelcatalog/internal/flagx"
	"github.com/dmitrijs2005/modelcatalog/internal/timex"
)

// FileConfig is the on-disk shape of the CLI configuration. Durations go
// through timex.Duration so "30s" and integer nanoseconds both work.
type FileConfig struct {
	BaseURL        string         `json:"base_url" yaml:"base_url"`
	Token          string         `json:"token" yaml:"token"`
	QuerySizeLimit int            `json:"query_size_limit" yaml:"query_size_limit"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the non-empty values of the file named by -c or
// -config. It panics when the file cannot be read or parsed.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	var fc FileConfig
	if err := flagx.DecodeConfigFile(path, &fc); err != nil {
		panic(err)
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Token != "" {
		cfg.Token = fc.Token
	}
	if fc.QuerySizeLimit > 0 {
		cfg.QuerySizeLimit = fc.QuerySizeLimit
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
