package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/appstate"
	"github.com/dmitrijs2005/expenseshare/internal/client/config"
	"github.com/dmitrijs2005/expenseshare/internal/client/otpflow"
	"github.com/dmitrijs2005/expenseshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/expenseshare/internal/client/router"
	"github.com/dmitrijs2005/expenseshare/internal/client/services"
	"github.com/dmitrijs2005/expenseshare/internal/client/session"
	"github.com/dmitrijs2005/expenseshare/internal/client/tokenstore"
	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

// timerInterval is the resend countdown step on the code screen.
var timerInterval = time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
	reader *bufio.Reader

	api     *api.Client
	store   *tokenstore.Store
	session *session.Controller
	router  *router.Router
	auth    services.AuthService
	groups  services.GroupService
	state   *appstate.Store

	login   *otpflow.LoginPage
	verify  *otpflow.VerifyPage
	pageLoc router.Location

	db *sql.DB
}

// Deps are the pieces NewApp builds from configuration; tests pass their own.
type Deps struct {
	Repo   metadata.Repository
	In     io.Reader
	Out    io.Writer
	Logger logging.Logger
}

// NewApp opens the local database and wires the client for cfg.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := tokenstore.OpenSQLite(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}
	repo, err := tokenstore.NewRepository(ctx, db, cfg.StoreSecret)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := New(ctx, cfg, Deps{Repo: repo, In: os.Stdin, Out: os.Stdout, Logger: logger})
	a.db = db
	return a, nil
}

// New wires an App from deps.
func New(ctx context.Context, cfg *config.Config, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	store := tokenstore.New(deps.Repo, logger)

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithTokenSource(store),
		api.WithLogger(logger),
	)

	sess := session.NewController(store, logger)

	a := &App{
		config:  cfg,
		logger:  logger.With("module", "cli"),
		out:     deps.Out,
		reader:  bufio.NewReader(deps.In),
		api:     client,
		store:   store,
		session: sess,
		router:  router.New(sess, cfg.LandingPath),
		auth:    services.NewAuthService(client, store, cfg.PhonePrefix, logger),
		groups:  services.NewGroupService(client),
		state:   appstate.New(appstate.WithGroups(appstate.SeedGroups(time.Now()))),
	}

	sess.InitializeFromStore(ctx)
	_ = a.navigate(router.Location{Path: cfg.LandingPath}, false)

	client.SetUnauthorizedHandler(a.onUnauthorized)
	sess.Subscribe(func(authenticated bool) {
		if !authenticated {
			a.refresh()
		}
	})
	return a
}

// Run starts the REPL on the app's input and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.printf("Welcome to ExpenseShare (type 'help' for commands)\n")
	a.Show(ctx)

	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the pages and the local database.
func (a *App) Close() {
	a.closePages()
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// onUnauthorized signs the session out after a protected request was
// rejected; the session subscription sends the user to the login screen.
func (a *App) onUnauthorized(ctx context.Context) {
	a.logger.Warn(ctx, "credential rejected by backend, signing out")
	_ = a.session.Logout(ctx)
}

func (a *App) refresh() {
	if _, _, err := a.router.Refresh(); err != nil {
		a.logger.Error(context.Background(), "navigation failed", "error", err)
	}
	a.syncPages()
}

func (a *App) navigate(loc router.Location, replace bool) error {
	_, _, err := a.router.Navigate(loc, replace)
	a.syncPages()
	return err
}

// syncPages opens the page controller of the current location and closes
// the ones the user left. A page is bound to the location it was opened
// for, so a new redirect target gets a new page.
func (a *App) syncPages() {
	loc, m := a.router.Current()
	if !sameLocation(loc, a.pageLoc) {
		a.closePages()
	}
	a.pageLoc = loc

	switch m.Route.Screen {
	case router.ScreenLogin:
		if a.login == nil {
			a.login = otpflow.NewLoginPage(a.auth, a.router, loc, a.router.Landing())
		}
	case router.ScreenVerifyOTP:
		if a.verify == nil {
			a.verify = otpflow.NewVerifyPage(a.auth, a.session, a.router, loc,
				a.router.Landing(), a.config.ResendCooldown)
			a.verify.StartTimer(timerInterval)
		}
	}
}

func (a *App) closePages() {
	if a.login != nil {
		a.login.Close()
		a.login = nil
	}
	if a.verify != nil {
		a.verify.Close()
		a.verify = nil
	}
}

func sameLocation(x, y router.Location) bool {
	if x.Path != y.Path || (x.State == nil) != (y.State == nil) {
		return false
	}
	return x.State == nil || *x.State == *y.State
}
