// Package config loads runtime configuration for the expense-sharing client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   API base URL
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-p string   international phone prefix
//	-k string   secret for the encrypted credential store
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds. Absent keys keep their default:
//
//	{
//	  "api_base_url": "http://localhost:3000/api",
//	  "database_path": "expenseshare.db",
//	  "request_timeout": "10s",
//	  "resend_cooldown": "30s",
//	  "landing_path": "/dashboard",
//	  "phone_prefix": "+91",
//	  "store_secret": "",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
