package otpflow

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/expenseshare/internal/client/models"
	"github.com/dmitrijs2005/expenseshare/internal/client/router"
)

type fakeAuth struct {
	mu          sync.Mutex
	sendCalls   []string
	verifyCalls [][2]string

	SendResp   *models.AuthResponse
	SendErr    error
	VerifyResp *models.AuthResponse
	VerifyErr  error

	// Gate, when set, blocks every call until it is closed or ctx ends.
	Gate chan struct{}
	// Entered receives a value when a call reaches the gate.
	Entered chan struct{}
}

func (f *fakeAuth) wait(ctx context.Context) {
	if f.Entered != nil {
		f.Entered <- struct{}{}
	}
	if f.Gate == nil {
		return
	}
	select {
	case <-f.Gate:
	case <-ctx.Done():
	}
}

func (f *fakeAuth) RequestCode(ctx context.Context, phone string) (*models.AuthResponse, error) {
	f.mu.Lock()
	f.sendCalls = append(f.sendCalls, phone)
	f.mu.Unlock()
	f.wait(ctx)
	if f.SendErr != nil {
		return nil, f.SendErr
	}
	if f.SendResp != nil {
		return f.SendResp, nil
	}
	return &models.AuthResponse{Success: true}, nil
}

func (f *fakeAuth) VerifyCode(ctx context.Context, phone, code string) (*models.AuthResponse, error) {
	f.mu.Lock()
	f.verifyCalls = append(f.verifyCalls, [2]string{phone, code})
	f.mu.Unlock()
	f.wait(ctx)
	if f.VerifyErr != nil {
		return nil, f.VerifyErr
	}
	return f.VerifyResp, nil
}

func (f *fakeAuth) SendCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sendCalls...)
}

func (f *fakeAuth) VerifyCalls() [][2]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][2]string(nil), f.verifyCalls...)
}

type fakeSession struct {
	logins []string
	Err    error
	// OnLogin runs inside Login, the way session subscribers do.
	OnLogin func()
}

func (f *fakeSession) Login(_ context.Context, phone string) error {
	if f.OnLogin != nil {
		f.OnLogin()
	}
	if f.Err != nil {
		return f.Err
	}
	f.logins = append(f.logins, phone)
	return nil
}

type navCall struct {
	Loc     router.Location
	Replace bool
}

type fakeNav struct {
	calls []navCall
}

func (f *fakeNav) Navigate(loc router.Location, replace bool) (router.Location, router.Match, error) {
	f.calls = append(f.calls, navCall{Loc: loc, Replace: replace})
	return loc, router.Match{}, nil
}
