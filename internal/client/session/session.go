// Package session holds the client's authentication state.
//
// Controller is the only writer of that state. It is seeded once from the
// token store at startup and afterwards changes only through Login and
// Logout; it never re-reads the store on its own.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

// ErrNoCredential is returned by Login when the store holds no credential.
var ErrNoCredential = errors.New("no stored credential")

// Store is the part of the token store the controller needs.
type Store interface {
	Token(ctx context.Context) (string, bool)
	SetPhoneNumber(ctx context.Context, phone string) error
	PhoneNumber(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

type Controller struct {
	store  Store
	logger logging.Logger

	mu            sync.RWMutex
	authenticated bool
	phone         string

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(authenticated bool)
}

func NewController(store Store, logger logging.Logger) *Controller {
	return &Controller{
		store:  store,
		logger: logger.With("module", "session"),
		subs:   make(map[int]func(bool)),
	}
}

// InitializeFromStore sets the state from the presence of a stored
// credential and reports it.
func (c *Controller) InitializeFromStore(ctx context.Context) bool {
	_, ok := c.store.Token(ctx)
	phone, _ := c.store.PhoneNumber(ctx)

	c.mu.Lock()
	c.authenticated = ok
	c.phone = phone
	c.mu.Unlock()

	c.logger.Debug(ctx, "session initialized", "authenticated", ok)
	c.notify(ok)
	return ok
}

func (c *Controller) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

// PhoneNumber is the display hint recorded by the last Login.
func (c *Controller) PhoneNumber() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phone
}

// Login marks the session authenticated. It is called once verification has
// already stored a credential; without one it fails with ErrNoCredential.
// On failure the session is left unauthenticated.
func (c *Controller) Login(ctx context.Context, phone string) error {
	if _, ok := c.store.Token(ctx); !ok {
		c.set(false, "")
		return ErrNoCredential
	}
	if err := c.store.SetPhoneNumber(ctx, phone); err != nil {
		c.set(false, "")
		return fmt.Errorf("recording phone number: %w", err)
	}

	c.set(true, phone)
	c.logger.Info(ctx, "signed in", "phone", phone)
	return nil
}

// Logout clears the token store and marks the session unauthenticated. The
// state flips even when clearing fails; the error is still returned.
// No backend call is made.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.store.Clear(ctx)
	c.set(false, "")
	if err != nil {
		c.logger.Error(ctx, "failed to clear credential on logout", "error", err)
		return err
	}
	c.logger.Info(ctx, "signed out")
	return nil
}

// Subscribe registers fn to be called after every state change. The
// returned func removes it.
func (c *Controller) Subscribe(fn func(authenticated bool)) (unsubscribe func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) set(authenticated bool, phone string) {
	c.mu.Lock()
	changed := c.authenticated != authenticated
	c.authenticated = authenticated
	c.phone = phone
	c.mu.Unlock()

	if changed {
		c.notify(authenticated)
	}
}

func (c *Controller) notify(authenticated bool) {
	c.subMu.Lock()
	fns := make([]func(bool), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(authenticated)
	}
}
