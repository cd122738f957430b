// Package devserver runs a local backend that speaks the OTP sign-in and
// family lookup contract the client expects. Codes are logged instead of
// being delivered by SMS.
package devserver

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/devserver/config"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/httpapi"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/otp"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/users"
	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

// purgeInterval is how often expired codes are dropped.
var purgeInterval = time.Minute

type App struct {
	config      *config.Config
	logger      logging.Logger
	codes       *otp.Store
	userService *users.Service
}

func NewApp(cfg *config.Config) *App {
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	codes := otp.NewStore(cfg.OTPLength, cfg.OTPValidity, cfg.OTPMaxAttempts)
	us := users.NewService(users.NewMemoryRepository(), codes, cfg, logger)

	return &App{config: cfg, logger: logger, codes: codes, userService: us}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.Address, app.config.BasePath, app.userService, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) purgeCodes(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.codes.Purge(); n > 0 {
				app.logger.Debug(ctx, "expired codes purged", "count", n)
			}
		}
	}
}

// Run blocks until ctx is cancelled or the listener fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeCodes(ctx)
	}()

	wg.Wait()
}
