package router

import (
	"errors"
	"fmt"
)

// ErrRedirectLoop is returned when resolving a location keeps redirecting.
var ErrRedirectLoop = errors.New("redirect loop")

const maxRedirects = 4

// AuthState reports the current session state.
type AuthState interface {
	IsAuthenticated() bool
}

// Guard is a pure function of the session state and the requested location.
type Guard struct {
	Table   *Table
	Landing string
}

// Check returns the location to redirect to, or ok when loc may be shown.
func (g Guard) Check(authenticated bool, loc Location) (redirect Location, ok bool) {
	m := g.Table.Match(loc.Path)

	switch m.Route.Access {
	case Protected:
		if !authenticated {
			return Location{Path: PathLogin, State: &State{From: loc.Path}}, false
		}
	case PublicOnly:
		if authenticated {
			return Location{Path: g.forwardTarget(loc)}, false
		}
	}
	return Location{}, true
}

func (g Guard) forwardTarget(loc Location) string {
	from := loc.From()
	if from == "" || g.Table.Match(from).Route.Access == PublicOnly {
		return g.Landing
	}
	return from
}

// Resolve follows redirects until a location may be shown.
func (g Guard) Resolve(authenticated bool, loc Location) (Location, Match, error) {
	for i := 0; i <= maxRedirects; i++ {
		next, ok := g.Check(authenticated, loc)
		if ok {
			return loc, g.Table.Match(loc.Path), nil
		}
		loc = next
	}
	return Location{}, Match{}, fmt.Errorf("%w: resolving %q", ErrRedirectLoop, loc.Path)
}
