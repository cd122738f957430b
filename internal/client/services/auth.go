package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/models"
	"github.com/dmitrijs2005/expenseshare/internal/common"
	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

const (
	PathSendOTP   = "/auth/send-otp"
	PathVerifyOTP = "/auth/verify-otp"
)

// AuthService defines the OTP login operations.
//
// Contract:
//   - RequestCode: ask the backend to send a code to the phone number.
//   - VerifyCode: exchange phone number and code for a credential.
//
// phone is the bare national number; the international prefix is added
// here. A response carrying a token has it persisted before returning, unless
// ctx was cancelled while the request was in flight.
type AuthService interface {
	RequestCode(ctx context.Context, phone string) (*models.AuthResponse, error)
	VerifyCode(ctx context.Context, phone, code string) (*models.AuthResponse, error)
}

type authService struct {
	api    Requester
	store  CredentialStore
	prefix string
	logger logging.Logger
}

func NewAuthService(api Requester, store CredentialStore, prefix string, logger logging.Logger) AuthService {
	if prefix == "" {
		prefix = common.DefaultPhonePrefix
	}
	return &authService{
		api:    api,
		store:  store,
		prefix: prefix,
		logger: logger.With("module", "auth"),
	}
}

func (a *authService) RequestCode(ctx context.Context, phone string) (*models.AuthResponse, error) {
	resp := &models.AuthResponse{}
	req := models.SendOTPRequest{Phone: a.prefix + phone}
	if err := a.api.Post(ctx, PathSendOTP, req, resp, api.RequestOptions{}); err != nil {
		return nil, err
	}

	if resp.HasToken() {
		// The backend may skip verification for some numbers.
		a.logger.Warn(ctx, "credential issued by send-otp without verification", "phone", req.Phone)
		if err := a.persist(ctx, resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (a *authService) VerifyCode(ctx context.Context, phone, code string) (*models.AuthResponse, error) {
	resp := &models.AuthResponse{}
	req := models.VerifyOTPRequest{Phone: a.prefix + phone, Code: code}
	if err := a.api.Post(ctx, PathVerifyOTP, req, resp, api.RequestOptions{}); err != nil {
		return nil, err
	}

	if resp.HasToken() {
		if err := a.persist(ctx, resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (a *authService) persist(ctx context.Context, resp *models.AuthResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.store.Save(ctx, resp.Token, resp.Profile()); err != nil {
		a.logger.Error(ctx, "failed to persist credential", "error", err)
		return fmt.Errorf("persisting credential: %w", err)
	}
	return nil
}
