package otpflow

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/router"
	"github.com/dmitrijs2005/expenseshare/internal/common"
)

// LoginPage is the phone number entry screen.
type LoginPage struct {
	auth    Auth
	nav     Navigator
	from    string
	landing string

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	phone  string
	state  State
	errMsg string
}

// NewLoginPage builds the page for loc; loc.State.From, when set, is where
// the user goes after signing in.
func NewLoginPage(auth Auth, nav Navigator, loc router.Location, landing string) *LoginPage {
	ctx, cancel := context.WithCancel(context.Background())
	return &LoginPage{
		auth:    auth,
		nav:     nav,
		from:    loc.From(),
		landing: landing,
		ctx:     ctx,
		cancel:  cancel,
		state:   EnteringPhone,
	}
}

// SetPhone replaces the entered number. Anything other than up to ten
// digits is refused and leaves the field unchanged.
func (p *LoginPage) SetPhone(value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(value) > common.PhoneDigits || (value != "" && !common.IsDigits(value)) {
		p.errMsg = MsgInvalidPhone
		return &ValidationError{Field: "phone", Message: MsgInvalidPhone}
	}
	p.phone = value
	p.errMsg = ""
	return nil
}

// Submit requests a code for the entered number and, on success, moves to
// the verification screen.
func (p *LoginPage) Submit() error {
	p.mu.Lock()
	if err := p.ctx.Err(); err != nil {
		p.mu.Unlock()
		return ErrPageClosed
	}
	phone := p.phone
	if len(phone) != common.PhoneDigits {
		p.errMsg = MsgInvalidPhone
		p.mu.Unlock()
		return &ValidationError{Field: "phone", Message: MsgInvalidPhone}
	}
	p.state = Submitting
	p.errMsg = ""
	p.mu.Unlock()

	_, err := p.auth.RequestCode(p.ctx, phone)

	p.mu.Lock()
	if p.ctx.Err() != nil {
		p.mu.Unlock()
		return ErrPageClosed
	}
	if err != nil {
		p.state = EnteringPhone
		p.errMsg = api.Message(err, MsgSendFailed)
		p.mu.Unlock()
		return err
	}
	p.state = AwaitingCode
	p.mu.Unlock()

	target := p.from
	if target == "" {
		target = p.landing
	}
	_, _, err = p.nav.Navigate(router.Location{
		Path:  router.PathVerifyOTP,
		State: &router.State{PhoneNumber: phone, From: target},
	}, false)
	return err
}

func (p *LoginPage) Phone() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phone
}

func (p *LoginPage) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ErrorMessage is the inline error text, or "".
func (p *LoginPage) ErrorMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// Close cancels any request still in flight.
func (p *LoginPage) Close() {
	p.cancel()
}
