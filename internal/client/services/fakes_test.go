package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/models"
)

type call struct {
	Method string
	Path   string
	Body   any
	Opts   api.RequestOptions
}

// fakeRequester records every call and answers with the configured
// response or error.
type fakeRequester struct {
	mu    sync.Mutex
	calls []call

	AuthResp *models.AuthResponse
	Family   *models.FamilyMembersResponse
	Err      error
	// Before runs ahead of answering; tests use it to cancel the context
	// while the request is "in flight".
	Before func()
}

func (f *fakeRequester) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeRequester) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeRequester) Get(_ context.Context, path string, out any, opts api.RequestOptions) error {
	f.record(call{Method: "GET", Path: path, Opts: opts})
	if f.Before != nil {
		f.Before()
	}
	if f.Err != nil {
		return f.Err
	}
	if r, ok := out.(*models.FamilyMembersResponse); ok && f.Family != nil {
		*r = *f.Family
	}
	return nil
}

func (f *fakeRequester) Post(_ context.Context, path string, body, out any, opts api.RequestOptions) error {
	f.record(call{Method: "POST", Path: path, Body: body, Opts: opts})
	if f.Before != nil {
		f.Before()
	}
	if f.Err != nil {
		return f.Err
	}
	if r, ok := out.(*models.AuthResponse); ok && f.AuthResp != nil {
		*r = *f.AuthResp
	}
	return nil
}

type saved struct {
	Token   string
	Profile *models.Profile
}

type fakeStore struct {
	saves []saved
	Err   error
}

func (f *fakeStore) Save(_ context.Context, token string, profile *models.Profile) error {
	if f.Err != nil {
		return f.Err
	}
	f.saves = append(f.saves, saved{Token: token, Profile: profile})
	return nil
}
