// Package otp keeps the one-time codes issued by the development backend.
// Challenges live in memory only; a restart forgets them.
package otp

import (
	"crypto/subtle"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/common"
)

// Challenge is an outstanding code for one phone number.
type Challenge struct {
	Phone     string
	Code      string
	Attempts  int
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Store struct {
	mu          sync.Mutex
	challenges  map[string]*Challenge
	length      int
	validity    time.Duration
	maxAttempts int
	now         func() time.Time
	generate    func(n int) (string, error)
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithGenerator replaces the random code source.
func WithGenerator(gen func(n int) (string, error)) Option {
	return func(s *Store) { s.generate = gen }
}

// NewStore issues codes of length digits valid for validity. After
// maxAttempts wrong guesses a challenge is dropped; 0 means unlimited.
func NewStore(length int, validity time.Duration, maxAttempts int, opts ...Option) *Store {
	if length <= 0 {
		length = common.OTPLength
	}
	s := &Store{
		challenges:  make(map[string]*Challenge),
		length:      length,
		validity:    validity,
		maxAttempts: maxAttempts,
		now:         time.Now,
		generate:    common.RandomDigits,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Issue creates a fresh challenge for phone, replacing any previous one.
func (s *Store) Issue(phone string) (Challenge, error) {
	code, err := s.generate(s.length)
	if err != nil {
		return Challenge{}, fmt.Errorf("generating code: %w", err)
	}

	now := s.now()
	c := &Challenge{
		Phone:     phone,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.validity),
	}

	s.mu.Lock()
	s.challenges[phone] = c
	s.mu.Unlock()
	return *c, nil
}

// Verify consumes the challenge for phone when code matches.
func (s *Store) Verify(phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.challenges[phone]
	if !ok {
		return common.ErrNotFound
	}
	if !s.now().Before(c.ExpiresAt) {
		delete(s.challenges, phone)
		return common.ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(c.Code), []byte(code)) != 1 {
		c.Attempts++
		if s.maxAttempts > 0 && c.Attempts >= s.maxAttempts {
			delete(s.challenges, phone)
			return common.ErrTooManyAttempts
		}
		return common.ErrInvalidCode
	}

	delete(s.challenges, phone)
	return nil
}

// Purge drops expired challenges and returns how many were removed.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for phone, c := range s.challenges {
		if !now.Before(c.ExpiresAt) {
			delete(s.challenges, phone)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}
