// Package tokenstore owns the bearer credential and the data cached next to
// it: the user profile, the settings and a display-only phone number. Every
// read and write of these keys goes through Store.
package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/expenseshare/internal/client/models"
	"github.com/dmitrijs2005/expenseshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

const (
	KeyToken       = "token"
	KeyUser        = "user"
	KeySettings    = "settings"
	KeyPhoneNumber = "phoneNumber"
)

var allKeys = []string{KeyToken, KeyUser, KeySettings, KeyPhoneNumber}

type Store struct {
	repo   metadata.Repository
	logger logging.Logger
}

func New(repo metadata.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("module", "tokenstore")}
}

// Save writes the credential and, when given, the cached user and settings in
// one step. A nil part of profile leaves the previously cached value alone.
func (s *Store) Save(ctx context.Context, token string, profile *models.Profile) error {
	values := map[string][]byte{KeyToken: []byte(token)}

	if profile != nil {
		if profile.User != nil {
			b, err := json.Marshal(profile.User)
			if err != nil {
				return fmt.Errorf("encoding user: %w", err)
			}
			values[KeyUser] = b
		}
		if profile.Settings != nil {
			b, err := json.Marshal(profile.Settings)
			if err != nil {
				return fmt.Errorf("encoding settings: %w", err)
			}
			values[KeySettings] = b
		}
	}

	if err := s.repo.SetMany(ctx, values); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// Token returns the stored credential. Storage faults are logged and reported
// as an absent credential.
func (s *Store) Token(ctx context.Context) (string, bool) {
	b, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		s.logger.Error(ctx, "failed to read credential", "error", err)
		return "", false
	}
	if len(b) == 0 {
		return "", false
	}
	return string(b), true
}

// Profile returns the cached user and settings; missing parts are nil.
func (s *Store) Profile(ctx context.Context) (models.Profile, error) {
	var p models.Profile

	b, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return p, err
	}
	if b != nil {
		p.User = &models.User{}
		if err := json.Unmarshal(b, p.User); err != nil {
			return models.Profile{}, fmt.Errorf("decoding cached user: %w", err)
		}
	}

	b, err = s.repo.Get(ctx, KeySettings)
	if err != nil {
		return p, err
	}
	if b != nil {
		p.Settings = &models.Settings{}
		if err := json.Unmarshal(b, p.Settings); err != nil {
			return models.Profile{}, fmt.Errorf("decoding cached settings: %w", err)
		}
	}
	return p, nil
}

func (s *Store) SetPhoneNumber(ctx context.Context, phone string) error {
	if err := s.repo.Set(ctx, KeyPhoneNumber, []byte(phone)); err != nil {
		return fmt.Errorf("saving phone number: %w", err)
	}
	return nil
}

func (s *Store) PhoneNumber(ctx context.Context) (string, bool) {
	b, err := s.repo.Get(ctx, KeyPhoneNumber)
	if err != nil {
		s.logger.Error(ctx, "failed to read phone number", "error", err)
		return "", false
	}
	if len(b) == 0 {
		return "", false
	}
	return string(b), true
}

// Clear removes the credential and everything cached with it. Clearing an
// empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, allKeys...); err != nil {
		return fmt.Errorf("clearing credential: %w", err)
	}
	return nil
}
