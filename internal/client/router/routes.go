// Package router maps client paths to screens and gates the protected ones.
//
// The route table is matched with gorilla/mux. Guard decides, from the
// session state alone, whether a location is shown or redirected, and
// Router records the outcome in the Navigator history.
package router

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathVerifyOTP = "/verify-otp"
	PathDashboard = "/dashboard"
	PathGroups    = "/groups"
	PathNewGroup  = "/groups/new"
	PathGroup     = "/groups/{groupId}"
)

// Screen names, also used as mux route names.
const (
	ScreenLogin     = "login"
	ScreenVerifyOTP = "verify-otp"
	ScreenDashboard = "dashboard"
	ScreenGroups    = "groups"
	ScreenNewGroup  = "new-group"
	ScreenGroup     = "group"
	ScreenNotFound  = "not-found"
)

// Access tells the guard how to treat a route.
type Access int

const (
	// Public routes are shown to everybody.
	Public Access = iota
	// PublicOnly routes forward authenticated visitors to the app.
	PublicOnly
	// Protected routes require an authenticated session.
	Protected
)

type Route struct {
	Screen   string
	Template string
	Access   Access
}

// Match is the result of resolving a path against the table.
type Match struct {
	Route Route
	Vars  map[string]string
}

var defaultRoutes = []Route{
	{ScreenLogin, PathLogin, PublicOnly},
	{ScreenVerifyOTP, PathVerifyOTP, PublicOnly},
	{ScreenDashboard, PathRoot, Protected},
	{ScreenDashboard, PathDashboard, Protected},
	{ScreenGroups, PathGroups, Protected},
	// must precede the {groupId} pattern
	{ScreenNewGroup, PathNewGroup, Protected},
	{ScreenGroup, PathGroup, Protected},
}

var notFound = Route{Screen: ScreenNotFound, Access: Public}

type Table struct {
	mux    *mux.Router
	routes map[*mux.Route]Route
}

func NewTable() *Table {
	t := &Table{mux: mux.NewRouter(), routes: make(map[*mux.Route]Route)}
	for _, r := range defaultRoutes {
		mr := t.mux.Path(r.Template)
		t.routes[mr] = r
	}
	return t
}

// Match resolves path. Unknown paths resolve to the public not-found screen.
func (t *Table) Match(path string) Match {
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path}}
	var m mux.RouteMatch
	if !t.mux.Match(req, &m) || m.Route == nil {
		return Match{Route: notFound}
	}
	r, ok := t.routes[m.Route]
	if !ok {
		return Match{Route: notFound}
	}
	return Match{Route: r, Vars: m.Vars}
}
