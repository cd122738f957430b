// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/common"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Address: bind address of the HTTP listener.
//   - BasePath: prefix every API route is mounted under.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidity: lifetime of an issued bearer token.
//   - OTPValidity: how long an issued code may be verified.
//   - OTPLength: number of digits in an issued code.
//   - OTPMaxAttempts: wrong guesses allowed before a code is burned.
//   - IssueTokenOnSend: also return a token from send-otp, as some
//     deployments do.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Address          string
	BasePath         string
	SecretKey        string
	TokenValidity    time.Duration
	OTPValidity      time.Duration
	OTPLength        int
	OTPMaxAttempts   int
	IssueTokenOnSend bool
	LogLevel         string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Address = ":3000"
	c.BasePath = "/api"
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.OTPValidity = 5 * time.Minute
	c.OTPLength = common.OTPLength
	c.OTPMaxAttempts = 5
	c.IssueTokenOnSend = false
	c.LogLevel = "debug"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
// args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
