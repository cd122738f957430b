package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/expenseshare/internal/flagx"
	"github.com/dmitrijs2005/expenseshare/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from an empty value.
type JSONConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	DatabasePath   *string         `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ResendCooldown *timex.Duration `json:"resend_cooldown"`
	LandingPath    *string         `json:"landing_path"`
	PhonePrefix    *string         `json:"phone_prefix"`
	StoreSecret    *string         `json:"store_secret"`
	LogLevel       *string         `json:"log_level"`
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
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LandingPath, jc.LandingPath)
	setString(&cfg.PhonePrefix, jc.PhonePrefix)
	setString(&cfg.StoreSecret, jc.StoreSecret)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ResendCooldown != nil {
		cfg.ResendCooldown = jc.ResendCooldown.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
