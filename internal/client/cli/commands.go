package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/appstate"
	"github.com/dmitrijs2005/expenseshare/internal/client/models"
	"github.com/dmitrijs2005/expenseshare/internal/client/otpflow"
	"github.com/dmitrijs2005/expenseshare/internal/client/router"
	"github.com/dmitrijs2005/expenseshare/internal/client/session"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
)

var (
	errWrongScreen = errors.New("not available on this screen")
	errUsage       = errors.New("usage")
)

// Go navigates to path and shows the resulting screen.
func (a *App) Go(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if err := a.navigate(router.Location{Path: path}, false); err != nil {
		a.printf("! %v\n", err)
		return err
	}
	return a.Show(ctx)
}

// Back leaves the code screen for the login screen, elsewhere it steps
// back through the history.
func (a *App) Back(ctx context.Context) error {
	if a.verify != nil {
		if err := a.verify.Back(); err != nil {
			a.printf("! %v\n", err)
			return err
		}
		a.syncPages()
		return a.Show(ctx)
	}
	if _, ok := a.router.Navigator().Back(); !ok {
		a.printf("Nothing to go back to\n")
		return nil
	}
	a.refresh()
	return a.Show(ctx)
}

// Phone enters number on the login screen and requests a code.
func (a *App) Phone(ctx context.Context, number string) error {
	if a.login == nil {
		return a.wrongScreen("login")
	}
	if err := a.login.SetPhone(number); err != nil {
		a.printf("! %s\n", a.login.ErrorMessage())
		return err
	}
	if err := a.login.Submit(); err != nil {
		a.printf("! %s\n", a.login.ErrorMessage())
		return err
	}
	a.syncPages()
	return a.Show(ctx)
}

// Digit types d into the focused code cell.
func (a *App) Digit(ctx context.Context, d string) error {
	if a.verify == nil {
		return a.wrongScreen("digit")
	}
	ok := false
	a.verify.Cells(func(c *otpflow.Cells) { ok = c.Type(d) })
	if !ok {
		a.printf("! a cell takes a single digit\n")
	}
	a.showVerify()
	return nil
}

func (a *App) Backspace(ctx context.Context) error {
	if a.verify == nil {
		return a.wrongScreen("backspace")
	}
	a.verify.Cells(func(c *otpflow.Cells) { c.Backspace() })
	a.showVerify()
	return nil
}

func (a *App) Paste(ctx context.Context, text string) error {
	if a.verify == nil {
		return a.wrongScreen("paste")
	}
	a.verify.Cells(func(c *otpflow.Cells) { c.Paste(text) })
	a.showVerify()
	return nil
}

// Code pastes text into the cells and verifies it. Without text the code is
// read from the terminal without echo.
func (a *App) Code(ctx context.Context, text string) error {
	if a.verify == nil {
		return a.wrongScreen("code")
	}
	if text == "" {
		var err error
		text, err = getSecret(a.reader, "Enter the 4-digit code", a.out)
		if err != nil {
			return err
		}
	}
	a.verify.Cells(func(c *otpflow.Cells) { c.Paste(text) })
	return a.Verify(ctx)
}

func (a *App) Verify(ctx context.Context) error {
	if a.verify == nil {
		return a.wrongScreen("verify")
	}
	page := a.verify
	if err := page.Verify(); err != nil {
		a.printf("! %s\n", page.ErrorMessage())
		return err
	}
	a.syncPages()
	a.printf("Signed in\n")
	return a.Show(ctx)
}

func (a *App) Resend(ctx context.Context) error {
	if a.verify == nil {
		return a.wrongScreen("resend")
	}
	err := a.verify.Resend()
	switch {
	case errors.Is(err, otpflow.ErrResendNotReady):
		a.printf("! Resend code in %ds\n", a.verify.Cooldown().Remaining())
	case err != nil:
		a.printf("! %s\n", a.verify.ErrorMessage())
	default:
		a.printf("A new code is on its way\n")
	}
	return err
}

// NewGroup creates a group, asks for its description and opens it.
func (a *App) NewGroup(ctx context.Context, name string) error {
	if name == "" {
		return a.usage("newgroup <name>")
	}
	desc, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	g, err := a.state.CreateGroup(name, desc)
	if err != nil {
		a.printf("! %v\n", err)
		return err
	}
	a.state.Notify(fmt.Sprintf("Group %q created", g.Name), models.NotificationSuccess)
	return a.Go(ctx, "/groups/"+g.ID)
}

func (a *App) Invite(ctx context.Context, phone string) error {
	g, err := a.currentGroup("invite")
	if err != nil {
		return err
	}
	if phone == "" {
		return a.usage("invite <phone>")
	}
	m, err := a.state.AddMember(g.ID, phone)
	if err != nil {
		a.printf("! %v\n", err)
		return err
	}
	a.state.Notify(fmt.Sprintf("%s invited to %s", m.PhoneNumber, g.Name), models.NotificationInfo)
	return a.Show(ctx)
}

func (a *App) RemoveMember(ctx context.Context, memberID string) error {
	g, err := a.currentGroup("remove")
	if err != nil {
		return err
	}
	if err := a.state.RemoveMember(g.ID, memberID); err != nil {
		a.printf("! %v\n", err)
		return err
	}
	return a.Show(ctx)
}

// AddExpense takes "<amount> <category> <description...>".
func (a *App) AddExpense(ctx context.Context, args []string) error {
	g, err := a.currentGroup("expense")
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return a.usage("expense <amount> <category> <description>")
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		a.printf("! invalid amount %q\n", args[0])
		return err
	}
	_, err = a.state.AddExpense(g.ID, appstate.ExpenseInput{
		Amount:      amount,
		Category:    models.Category(args[1]),
		Description: strings.Join(args[2:], " "),
	})
	if err != nil {
		a.printf("! %v\n", err)
		if errors.Is(err, appstate.ErrInvalidCategory) {
			a.printf("  categories: %v\n", models.Categories)
		}
		return err
	}
	return a.Show(ctx)
}

// Family lists the members known to the backend for the signed-in user.
func (a *App) Family(ctx context.Context) error {
	members, err := a.groups.FamilyMembers(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			a.printf("! Your session has expired. Please sign in again.\n")
			return a.Show(ctx)
		}
		a.printf("! %s\n", api.Message(err, "Failed to fetch family members."))
		return err
	}
	if len(members) == 0 {
		a.printf("No family members\n")
		return nil
	}
	for _, m := range members {
		a.printf("  %s  %s  %s\n", m.ID, m.Name, m.PhoneNumber)
	}
	return nil
}

func (a *App) Notifications(ctx context.Context) error {
	list := a.state.Notifications()
	if len(list) == 0 {
		a.printf("No notifications\n")
		return nil
	}
	for _, n := range list {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		a.printf("%s %s  [%s] %s\n", mark, n.ID, n.Type, n.Message)
	}
	return nil
}

func (a *App) MarkRead(ctx context.Context, id string) error {
	if err := a.state.MarkRead(id); err != nil {
		a.printf("! %v\n", err)
		return err
	}
	return nil
}

// WhoAmI prints the cached profile and the claims of the stored credential.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Not signed in\n")
		return nil
	}
	a.printf("Phone: %s\n", a.session.PhoneNumber())

	p, err := a.store.Profile(ctx)
	if err != nil {
		a.logger.Error(ctx, "failed to read cached profile", "error", err)
	}
	if p.User != nil {
		a.printf("User: %s %s\n", p.User.ID, p.User.Name)
	}
	if p.Settings != nil {
		a.printf("Language: %s  Date format: %s\n", p.Settings.Language, p.Settings.DateFormat)
	}

	if tok, ok := a.store.Token(ctx); ok {
		if c, err := session.ParseClaims(tok); err == nil && c.ExpiresAt != nil {
			a.printf("Token expires: %s\n", c.ExpiresAt.Time.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

// Logout signs out locally; the backend is not contacted.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.printf("Signed out\n")
	_ = a.Show(ctx)
	return err
}

func (a *App) currentGroup(cmd string) (models.Group, error) {
	_, m := a.router.Current()
	if m.Route.Screen != router.ScreenGroup {
		return models.Group{}, a.wrongScreen(cmd)
	}
	g, err := a.groupFor(m)
	if err != nil {
		a.printf("! %v\n", err)
	}
	return g, err
}

func (a *App) wrongScreen(cmd string) error {
	a.printf("! %s is %s\n", cmd, errWrongScreen)
	return errWrongScreen
}

func (a *App) usage(text string) error {
	a.printf("Usage: %s\n", text)
	return errUsage
}
