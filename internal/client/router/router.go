package router

import (
	"github.com/dmitrijs2005/expenseshare/internal/common"
)

// Router ties the guard to the navigator.
type Router struct {
	guard Guard
	auth  AuthState
	nav   *Navigator
}

func New(auth AuthState, landing string) *Router {
	if landing == "" {
		landing = PathDashboard
	}
	return &Router{
		guard: Guard{Table: NewTable(), Landing: landing},
		auth:  auth,
		nav:   NewNavigator(),
	}
}

func (r *Router) Navigator() *Navigator { return r.nav }

func (r *Router) Landing() string { return r.guard.Landing }

// Navigate resolves loc against the current session state and records the
// resulting location. A redirected request never enters the history.
func (r *Router) Navigate(loc Location, replace bool) (Location, Match, error) {
	final, m, err := r.guard.Resolve(r.auth.IsAuthenticated(), loc)
	if err != nil {
		return Location{}, Match{}, err
	}
	if replace {
		r.nav.Replace(final)
	} else {
		r.nav.Push(final)
	}
	return final, m, nil
}

// Refresh re-runs the guard for the current location, e.g. after the
// session state changed.
func (r *Router) Refresh() (Location, Match, error) {
	return r.Navigate(r.nav.Current(), true)
}

// Current is the location shown now and its route.
func (r *Router) Current() (Location, Match) {
	loc := r.nav.Current()
	return loc, r.guard.Table.Match(loc.Path)
}

// GroupID returns the {groupId} variable of m, if any.
func GroupID(m Match) (string, error) {
	id, ok := m.Vars["groupId"]
	if !ok || id == "" {
		return "", common.ErrNotFound
	}
	return id, nil
}
