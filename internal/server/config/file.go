package config

import (
	"os"

	"github.com/dmitrijs2005/modelcatalog/internal/flagx"
	"github.com/dmitrijs2005/modelcatalog/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration.
type FileConfig struct {
	Addr            string         `json:"addr" yaml:"addr"`
	DatabaseDSN     string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey       string         `json:"secret_key" yaml:"secret_key"`
	TokenValidity   timex.Duration `json:"token_validity" yaml:"token_validity"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	Seed            *bool          `json:"seed" yaml:"seed"`
	DevUser         string         `json:"dev_user" yaml:"dev_user"`
	LogFormat       string         `json:"log_format" yaml:"log_format"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the values set in the file named by -c or
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

	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.DatabaseDSN != "" {
		cfg.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.TokenValidity.Duration > 0 {
		cfg.TokenValidity = fc.TokenValidity.Duration
	}
	if fc.ShutdownTimeout.Duration > 0 {
		cfg.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	if fc.DevUser != "" {
		cfg.DevUser = fc.DevUser
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
