package config

import (
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/client/otpflow"
	"github.com/dmitrijs2005/expenseshare/internal/client/router"
	"github.com/dmitrijs2005/expenseshare/internal/common"
)

// Config holds runtime settings for the expense-sharing client.
//
// Fields:
//   - APIBaseURL: base URL every backend path is joined onto.
//   - DatabasePath: local SQLite file holding the credential store.
//   - RequestTimeout: per-request HTTP timeout.
//   - ResendCooldown: wait before another OTP may be requested.
//   - LandingPath: where a signed-in user goes by default.
//   - PhonePrefix: international prefix prepended to the 10-digit number.
//   - StoreSecret: when set, stored values are encrypted with a key derived
//     from it.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	ResendCooldown time.Duration
	LandingPath    string
	PhonePrefix    string
	StoreSecret    string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.DatabasePath = "expenseshare.db"
	c.RequestTimeout = 10 * time.Second
	c.ResendCooldown = otpflow.DefaultCooldown
	c.LandingPath = router.PathDashboard
	c.PhonePrefix = common.DefaultPhonePrefix
	c.StoreSecret = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. args excludes the program name.
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
