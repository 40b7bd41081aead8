package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
//	-a string           listen address (e.g. ":8080")
//	-d string           PostgreSQL DSN; empty keeps the catalog in memory
//	-s string           JWT HMAC secret key
//	-t int              token validity, minutes
//	-seed               load the demo data set
//	-dev-user string    user the start-up token is issued for ("" disables it)
//	-log-format string  text, json or zerolog
//	-log-level string   debug, info, warn or error
//
// Durations are given as integer minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-seed", "-dev-user", "-log-format", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidity.Minutes()), "token validity (in minutes)")
	fs.BoolVar(&config.Seed, "seed", config.Seed, "load demo data")
	fs.StringVar(&config.DevUser, "dev-user", config.DevUser, "user for the start-up token")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidity = time.Duration(*tokenValidity) * time.Minute
}
