package router

import "sync"

// State is the navigation state carried with a location.
type State struct {
	// From is the path the user originally asked for.
	From string
	// PhoneNumber is set when moving from the login screen to code entry.
	PhoneNumber string
}

type Location struct {
	Path  string
	State *State
}

// From returns the recorded origin, or "".
func (l Location) From() string {
	if l.State == nil {
		return ""
	}
	return l.State.From
}

// Navigator is an in-memory history stack.
type Navigator struct {
	mu      sync.RWMutex
	history []Location
}

func NewNavigator() *Navigator {
	return &Navigator{}
}

func (n *Navigator) Push(loc Location) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, loc)
}

// Replace overwrites the current entry, so Back never returns to it.
func (n *Navigator) Replace(loc Location) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		n.history = append(n.history, loc)
		return
	}
	n.history[len(n.history)-1] = loc
}

// Back pops the current entry and reports whether there was one to return to.
func (n *Navigator) Back() (Location, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) < 2 {
		return Location{}, false
	}
	n.history = n.history[:len(n.history)-1]
	return n.history[len(n.history)-1], true
}

func (n *Navigator) Current() Location {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.history) == 0 {
		return Location{Path: PathRoot}
	}
	return n.history[len(n.history)-1]
}

func (n *Navigator) History() []Location {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]Location(nil), n.history...)
}
