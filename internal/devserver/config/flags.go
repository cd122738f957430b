package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address (e.g., ":3000")
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-o int      code validity, seconds
//	-n int      code length
//	-q bool     also issue a token from send-otp
//	-l string   log level
//
// Flags it does not know are filtered out first with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-o", "-n", "-q", "-l"})

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(cfg.TokenValidity.Minutes()), "token validity (in minutes)")
	otpValidity := fs.Int("o", int(cfg.OTPValidity.Seconds()), "code validity (in seconds)")
	fs.IntVar(&cfg.OTPLength, "n", cfg.OTPLength, "code length")
	fs.BoolVar(&cfg.IssueTokenOnSend, "q", cfg.IssueTokenOnSend, "issue a token from send-otp")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.TokenValidity = time.Duration(*tokenValidity) * time.Minute
	cfg.OTPValidity = time.Duration(*otpValidity) * time.Second
	return nil
}
