package otpflow

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/router"
)

// VerifyPage is the code entry screen.
type VerifyPage struct {
	auth     Auth
	session  Session
	nav      Navigator
	phone    string
	from     string
	redirect string
	cooldown *Cooldown

	ctx       context.Context
	cancel    context.CancelFunc
	stopTimer func()

	mu     sync.Mutex
	cells  Cells
	state  State
	errMsg string
}

// NewVerifyPage builds the page for loc, which carries the phone number and
// the post-login target in its state. The resend cooldown starts full.
func NewVerifyPage(auth Auth, session Session, nav Navigator, loc router.Location, landing string, cooldown time.Duration) *VerifyPage {
	ctx, cancel := context.WithCancel(context.Background())
	p := &VerifyPage{
		auth:     auth,
		session:  session,
		nav:      nav,
		from:     loc.From(),
		redirect: loc.From(),
		cooldown: NewCooldown(cooldown),
		ctx:      ctx,
		cancel:   cancel,
		state:    AwaitingCode,
	}
	if loc.State != nil {
		p.phone = loc.State.PhoneNumber
	}
	if p.redirect == "" {
		p.redirect = landing
	}
	return p
}

// StartTimer ticks the resend cooldown every interval until Close.
func (p *VerifyPage) StartTimer(interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopTimer != nil || p.ctx.Err() != nil {
		return
	}
	p.stopTimer = p.cooldown.Run(p.ctx, interval)
}

// Cells edits the code inputs under the page lock.
func (p *VerifyPage) Cells(fn func(c *Cells)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.cells)
}

func (p *VerifyPage) Code() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cells.Code()
}

// Verify exchanges the entered code for a credential. On success the
// session is signed in and the user is sent to the recorded target,
// replacing this screen in the history. Entered digits survive a failure.
func (p *VerifyPage) Verify() error {
	p.mu.Lock()
	if p.ctx.Err() != nil {
		p.mu.Unlock()
		return ErrPageClosed
	}
	if p.phone == "" {
		p.errMsg = MsgMissingPhone
		p.mu.Unlock()
		return &ValidationError{Field: "phone", Message: MsgMissingPhone}
	}
	if !p.cells.Complete() {
		p.errMsg = MsgIncompleteOTP
		p.mu.Unlock()
		return &ValidationError{Field: "code", Message: MsgIncompleteOTP}
	}
	code := p.cells.Code()
	p.state = Verifying
	p.errMsg = ""
	p.mu.Unlock()

	resp, err := p.auth.VerifyCode(p.ctx, p.phone, code)

	p.mu.Lock()
	if p.ctx.Err() != nil {
		p.mu.Unlock()
		return ErrPageClosed
	}
	if err != nil {
		p.state = AwaitingCode
		p.errMsg = api.Message(err, MsgVerifyFailed)
		p.mu.Unlock()
		return err
	}
	if !resp.HasToken() {
		p.state = AwaitingCode
		p.errMsg = MsgVerifyFailed
		if resp.Message != "" {
			p.errMsg = resp.Message
		}
		p.mu.Unlock()
		return ErrNoToken
	}
	phone := p.phone
	p.mu.Unlock()

	// Login notifies session subscribers, which may close this page.
	loginErr := p.session.Login(p.ctx, phone)

	p.mu.Lock()
	if loginErr != nil {
		p.state = AwaitingCode
		p.errMsg = MsgVerifyFailed
		p.mu.Unlock()
		return loginErr
	}
	p.state = Authenticated
	closed := p.ctx.Err() != nil
	p.mu.Unlock()
	if closed {
		return ErrPageClosed
	}

	p.stop()
	_, _, err = p.nav.Navigate(router.Location{Path: p.redirect}, true)
	return err
}

// Resend asks for a new code once the cooldown has run out. The cooldown
// restarts as soon as the request is made, whatever its outcome.
func (p *VerifyPage) Resend() error {
	p.mu.Lock()
	if p.ctx.Err() != nil {
		p.mu.Unlock()
		return ErrPageClosed
	}
	if !p.cooldown.Ready() {
		p.mu.Unlock()
		return ErrResendNotReady
	}
	p.cooldown.Reset()
	p.mu.Unlock()

	_, err := p.auth.RequestCode(p.ctx, p.phone)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx.Err() != nil {
		return ErrPageClosed
	}
	if err != nil {
		p.errMsg = api.Message(err, MsgResendFailed)
		return err
	}
	p.errMsg = ""
	return nil
}

// Back returns to the login screen, keeping the post-login target.
func (p *VerifyPage) Back() error {
	p.Close()
	loc := router.Location{Path: router.PathLogin}
	if p.from != "" {
		loc.State = &router.State{From: p.from}
	}
	_, _, err := p.nav.Navigate(loc, false)
	return err
}

func (p *VerifyPage) Phone() string { return p.phone }

func (p *VerifyPage) Redirect() string { return p.redirect }

func (p *VerifyPage) Cooldown() *Cooldown { return p.cooldown }

func (p *VerifyPage) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *VerifyPage) ErrorMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// Close cancels any request in flight and stops the cooldown timer.
func (p *VerifyPage) Close() {
	p.cancel()
	p.stop()
}

func (p *VerifyPage) stop() {
	p.mu.Lock()
	stop := p.stopTimer
	p.stopTimer = nil
	p.mu.Unlock()
	if stop != nil {
		stop()
	}
}
