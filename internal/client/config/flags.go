package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/flagx"
)

var knownFlags = []string{"-u", "-d", "-t", "-p", "-k", "-l"}

// parseFlags populates selected Config fields from command-line flags.
// Flags it does not know are filtered out first with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.PhonePrefix, "p", cfg.PhonePrefix, "international phone prefix")
	fs.StringVar(&cfg.StoreSecret, "k", cfg.StoreSecret, "credential store secret")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
