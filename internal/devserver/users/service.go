// Package users is the account side of the development backend: it hands
// out codes, exchanges them for bearer tokens and answers the family lookup.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/common"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/auth"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/config"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/otp"
	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

// Session is what a successful exchange returns to the caller.
type Session struct {
	Token string
	User  *User
}

type Service struct {
	repo             Repository
	codes            *otp.Store
	logger           logging.Logger
	jwtSecret        []byte
	tokenValidity    time.Duration
	issueTokenOnSend bool
	now              func() time.Time
}

func NewService(repo Repository, codes *otp.Store, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		repo:             repo,
		codes:            codes,
		logger:           logger.With("module", "users"),
		jwtSecret:        []byte(cfg.SecretKey),
		tokenValidity:    cfg.TokenValidity,
		issueTokenOnSend: cfg.IssueTokenOnSend,
		now:              time.Now,
	}
}

// ValidPhone accepts an international number: '+' followed by 8 to 15 digits.
func ValidPhone(phone string) bool {
	digits, ok := strings.CutPrefix(phone, "+")
	return ok && len(digits) >= 8 && len(digits) <= 15 && common.IsDigits(digits)
}

// SendCode issues a code for phone. When the backend is configured to do
// so, it also signs the user in and returns a session.
func (s *Service) SendCode(ctx context.Context, phone string) (*Session, error) {
	if !ValidPhone(phone) {
		return nil, common.ErrInvalidPhone
	}

	c, err := s.codes.Issue(phone)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "code issued", "phone", phone, "code", c.Code, "expires_at", c.ExpiresAt)

	if !s.issueTokenOnSend {
		return nil, nil
	}
	return s.signIn(ctx, phone)
}

// VerifyCode exchanges code for a session.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) (*Session, error) {
	if !ValidPhone(phone) {
		return nil, common.ErrInvalidPhone
	}
	if len(code) == 0 || !common.IsDigits(code) {
		return nil, common.ErrInvalidCode
	}

	if err := s.codes.Verify(phone, code); err != nil {
		s.logger.Info(ctx, "code rejected", "phone", phone, "error", err)
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCode
		}
		return nil, err
	}
	return s.signIn(ctx, phone)
}

func (s *Service) signIn(ctx context.Context, phone string) (*Session, error) {
	user, err := s.repo.Create(ctx, &User{Phone: phone, CreatedAt: s.now()})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Phone, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "signed in", "user_id", user.ID)
	return &Session{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to a user id.
func (s *Service) Authenticate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// FamilyMembers lists every other user known to the backend.
func (s *Service) FamilyMembers(ctx context.Context, userID string) ([]*User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*User, 0, len(all))
	for _, u := range all {
		if u.ID != userID {
			out = append(out, u)
		}
	}
	return out, nil
}
