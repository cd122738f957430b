package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/expenseshare/internal/flagx"
	"github.com/dmitrijs2005/expenseshare/internal/timex"
)

// JSONConfig is the on-disk shape of Config. Durations accept both "5m"
// and integer nanoseconds; absent keys keep the current value.
type JSONConfig struct {
	Address          *string         `json:"address"`
	BasePath         *string         `json:"base_path"`
	SecretKey        *string         `json:"secret_key"`
	TokenValidity    *timex.Duration `json:"token_validity"`
	OTPValidity      *timex.Duration `json:"otp_validity"`
	OTPLength        *int            `json:"otp_length"`
	OTPMaxAttempts   *int            `json:"otp_max_attempts"`
	IssueTokenOnSend *bool           `json:"issue_token_on_send"`
	LogLevel         *string         `json:"log_level"`
}

// parseJSON overlays cfg with the JSON file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	c := &JSONConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if c.Address != nil {
		cfg.Address = *c.Address
	}
	if c.BasePath != nil {
		cfg.BasePath = *c.BasePath
	}
	if c.SecretKey != nil {
		cfg.SecretKey = *c.SecretKey
	}
	if c.TokenValidity != nil {
		cfg.TokenValidity = c.TokenValidity.Duration
	}
	if c.OTPValidity != nil {
		cfg.OTPValidity = c.OTPValidity.Duration
	}
	if c.OTPLength != nil {
		cfg.OTPLength = *c.OTPLength
	}
	if c.OTPMaxAttempts != nil {
		cfg.OTPMaxAttempts = *c.OTPMaxAttempts
	}
	if c.IssueTokenOnSend != nil {
		cfg.IssueTokenOnSend = *c.IssueTokenOnSend
	}
	if c.LogLevel != nil {
		cfg.LogLevel = *c.LogLevel
	}
	return nil
}
