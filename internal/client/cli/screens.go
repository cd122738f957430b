package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/expenseshare/internal/client/appstate"
	"github.com/dmitrijs2005/expenseshare/internal/client/models"
	"github.com/dmitrijs2005/expenseshare/internal/client/otpflow"
	"github.com/dmitrijs2005/expenseshare/internal/client/router"
)

const dateLayout = "02 Jan 2006"

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// getStatus is shown in the prompt.
func (a *App) getStatus() string {
	loc, _ := a.router.Current()
	who := "signed out"
	if a.isLoggedIn() {
		who = a.session.PhoneNumber()
		if who == "" {
			who = "signed in"
		}
	}
	s := fmt.Sprintf("(%s %s", who, loc.Path)
	if a.verify != nil {
		if n := a.verify.Cooldown().Remaining(); n > 0 {
			s += fmt.Sprintf(" resend in %ds", n)
		}
	}
	return s + ")"
}

// Show renders the current screen.
func (a *App) Show(ctx context.Context) error {
	_, m := a.router.Current()

	switch m.Route.Screen {
	case router.ScreenLogin:
		a.showLogin()
	case router.ScreenVerifyOTP:
		a.showVerify()
	case router.ScreenDashboard:
		a.showDashboard()
	case router.ScreenGroups:
		a.showGroups()
	case router.ScreenNewGroup:
		a.printf("Create a new group: newgroup <name>\n")
	case router.ScreenGroup:
		return a.showGroup(ctx, m)
	default:
		a.printf("Page not found.\nBack to Dashboard: go %s\n", router.PathRoot)
	}
	return nil
}

func (a *App) showLogin() {
	a.printf("Sign in\nEnter your WhatsApp number to continue: login <10-digit number>\n")
	if a.login == nil {
		return
	}
	if msg := a.login.ErrorMessage(); msg != "" {
		a.printf("! %s\n", msg)
	}
}

func (a *App) showVerify() {
	if a.verify == nil {
		return
	}
	a.printf("We've sent a 4-digit verification code to %s%s\n", a.config.PhonePrefix, a.verify.Phone())

	var cells []string
	a.verify.Cells(func(c *otpflow.Cells) {
		for i, d := range c.Values() {
			if d == "" {
				d = "_"
			}
			if i == c.Focus() {
				d = "[" + d + "]"
			} else {
				d = " " + d + " "
			}
			cells = append(cells, d)
		}
	})
	a.printf("  %s\n", strings.Join(cells, ""))

	if n := a.verify.Cooldown().Remaining(); n > 0 {
		a.printf("Resend code in %ds\n", n)
	} else {
		a.printf("Resend code: resend\n")
	}
	if msg := a.verify.ErrorMessage(); msg != "" {
		a.printf("! %s\n", msg)
	}
}

func (a *App) showDashboard() {
	sum := a.state.Dashboard()

	a.printf("Dashboard\n")
	a.printf("  Groups: %d   Total expenses: %s   Members: %d\n",
		sum.TotalGroups, sum.TotalExpenses.StringFixed(2), sum.TotalMembers)

	a.printf("Recent expenses\n")
	if len(sum.Recent) == 0 {
		a.printf("  No expenses yet. Go to a group to add expenses.\n")
	} else {
		tw := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
		for _, e := range sum.Recent {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
				e.Description, e.Amount.StringFixed(2), e.GroupName, e.Date.Format(dateLayout), e.CreatedByName)
		}
		_ = tw.Flush()
	}

	a.printf("Your groups\n")
	if len(sum.Groups) == 0 {
		a.printf("  Create First Group: go %s\n", router.PathNewGroup)
		return
	}
	for i, g := range sum.Groups {
		if i == appstate.RecentLimit {
			break
		}
		a.printf("  %s  %s  (%d members, %s)\n", g.GroupID, g.Name, g.Members, g.Total.StringFixed(2))
	}
}

func (a *App) showGroups() {
	groups := a.state.Groups()
	a.printf("Groups\n")
	if len(groups) == 0 {
		a.printf("  No groups yet: go %s\n", router.PathNewGroup)
		return
	}
	tw := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	for _, g := range groups {
		fmt.Fprintf(tw, "  %s\t%s\t%d members\t%s\n", g.ID, g.Name, len(g.Members), g.Total().StringFixed(2))
	}
	_ = tw.Flush()
}

func (a *App) showGroup(ctx context.Context, m router.Match) error {
	g, err := a.groupFor(m)
	if errors.Is(err, appstate.ErrGroupNotFound) {
		if err := a.navigate(router.Location{Path: router.PathGroups}, true); err != nil {
			return err
		}
		return a.Show(ctx)
	}
	if err != nil {
		return err
	}
	_ = a.state.Select(g.ID)

	a.printf("%s\n  %s\n  Invite code: %s\n", g.Name, g.Description, g.InviteCode)
	a.printf("Members\n")
	for _, mem := range g.Members {
		a.printf("  %s  %s  %s\n", mem.ID, mem.Name, mem.PhoneNumber)
	}
	a.printf("Expenses (total %s)\n", g.Total().StringFixed(2))
	tw := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	for _, e := range g.Expenses {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			e.Date.Format(dateLayout), e.Description, e.Category, e.Amount.StringFixed(2), g.MemberName(e.CreatedBy))
	}
	_ = tw.Flush()
	return nil
}

func (a *App) groupFor(m router.Match) (models.Group, error) {
	id, err := router.GroupID(m)
	if err != nil {
		return models.Group{}, appstate.ErrGroupNotFound
	}
	return a.state.Group(id)
}
