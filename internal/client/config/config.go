package config

import (
	"os"
	"time"
)

// TokenEnv names the environment variable holding the bearer token.
const TokenEnv = "CATALOG_TOKEN"

// Config holds runtime settings for the catalog CLI.
type Config struct {
	BaseURL        string
	Token          string
	QuerySizeLimit int
	RequestTimeout time.Duration
	LogFormat      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://validation-v2.brainsimulation.eu"
	c.QuerySizeLimit = 1000
	c.RequestTimeout = 30 * time.Second
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	if token, ok := os.LookupEnv(TokenEnv); ok && token != "" {
		cfg.Token = token
	}
}
