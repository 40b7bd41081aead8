// Package config handles configuration for the catalog server,
// including defaults, a JSON or YAML file overlay, the environment and
// command-line flags.
package config

import (
	"os"
	"time"
)

// SecretEnv names the environment variable holding the JWT signing secret.
const SecretEnv = "CATALOG_SECRET_KEY"

// Config holds runtime settings for the catalog server.
//
// An empty DatabaseDSN keeps the catalog in memory. An empty SecretKey makes
// the server generate a random one at start-up, so tokens from a previous run
// stop working.
type Config struct {
	Addr            string
	DatabaseDSN     string
	SecretKey       string
	TokenValidity   time.Duration
	ShutdownTimeout time.Duration
	Seed            bool
	DevUser         string
	LogFormat       string
	LogLevel        string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidity = time.Hour
	c.ShutdownTimeout = 5 * time.Second
	c.Seed = true
	c.DevUser = "dev"
	c.LogFormat = "json"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	if v := os.Getenv(SecretEnv); v != "" {
		cfg.SecretKey = v
	}
}
