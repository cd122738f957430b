package otpflow

import (
	"context"

	"github.com/dmitrijs2005/expenseshare/internal/client/models"
	"github.com/dmitrijs2005/expenseshare/internal/client/router"
)

// Auth is the part of services.AuthService the pages call.
type Auth interface {
	RequestCode(ctx context.Context, phone string) (*models.AuthResponse, error)
	VerifyCode(ctx context.Context, phone, code string) (*models.AuthResponse, error)
}

// Session is the part of the session controller the pages call.
type Session interface {
	Login(ctx context.Context, phone string) error
}

type Navigator interface {
	Navigate(loc router.Location, replace bool) (router.Location, router.Match, error)
}
