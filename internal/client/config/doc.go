// Package config loads runtime configuration for the catalog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. The CATALOG_TOKEN environment variable.
//  4. Command-line flags, which override everything above.
//
// # File schema
//
//	{
//	  "base_url": "https://validation-v2.brainsimulation.eu",
//	  "token": "",
//	  "query_size_limit": 1000,
//	  "request_timeout": "30s",
//	  "log_format": "text",
//	  "log_level": "info"
//	}
//
// The same keys are accepted in YAML when the file ends in .yaml or .yml.
// Empty or missing keys keep the earlier value.
package config
