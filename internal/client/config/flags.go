package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/flagx"
)

var knownFlags = []string{
	"-u", "-t", "-s", "-timeout", "-log-format", "-log-level",
}

// parseFlags populates Config fields from command-line flags.
//
//	-u string           catalog base URL
//	-t string           bearer token
//	-s int              page size used for list queries
//	-timeout int        per-request timeout (seconds)
//	-log-format string  text or json
//	-log-level string   debug, info, warn or error
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "catalog base URL")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "bearer token")
	fs.IntVar(&cfg.QuerySizeLimit, "s", cfg.QuerySizeLimit, "page size for list queries")
	timeout := fs.Int("timeout", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
