package metadata

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/expenseshare/internal/common"
	"github.com/dmitrijs2005/expenseshare/internal/cryptox"
)

// SaltKey holds the key-derivation salt in the wrapped repository. It is
// stored in clear and hidden from List.
const SaltKey = "__kdf_salt"

const saltSize = 16

// EncryptedRepository seals values before handing them to the wrapped
// repository. Keys stay in clear.
type EncryptedRepository struct {
	inner Repository
	salt  []byte
	key   []byte
}

// NewEncryptedRepository derives the sealing key from secret and the salt
// kept in inner, creating the salt on first use.
func NewEncryptedRepository(ctx context.Context, inner Repository, secret []byte) (*EncryptedRepository, error) {
	salt, err := inner.Get(ctx, SaltKey)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(saltSize)
		if err := inner.Set(ctx, SaltKey, salt); err != nil {
			return nil, err
		}
	}

	return &EncryptedRepository{
		inner: inner,
		salt:  salt,
		key:   cryptox.DeriveKey(secret, salt),
	}, nil
}

func (r *EncryptedRepository) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := r.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	plain, err := cryptox.Open(r.key, sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata[%s]: %w", key, err)
	}
	return plain, nil
}

func (r *EncryptedRepository) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(r.key, value)
	if err != nil {
		return fmt.Errorf("failed to seal metadata[%s]: %w", key, err)
	}
	return r.inner.Set(ctx, key, sealed)
}

func (r *EncryptedRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	sealed := make(map[string][]byte, len(values))
	for k, v := range values {
		s, err := cryptox.Seal(r.key, v)
		if err != nil {
			return fmt.Errorf("failed to seal metadata[%s]: %w", k, err)
		}
		sealed[k] = s
	}
	return r.inner.SetMany(ctx, sealed)
}

func (r *EncryptedRepository) Delete(ctx context.Context, keys ...string) error {
	return r.inner.Delete(ctx, keys...)
}

func (r *EncryptedRepository) List(ctx context.Context) (map[string][]byte, error) {
	all, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(all))
	for k, sealed := range all {
		if k == SaltKey {
			continue
		}
		plain, err := cryptox.Open(r.key, sealed)
		if err != nil {
			return nil, fmt.Errorf("failed to open metadata[%s]: %w", k, err)
		}
		out[k] = plain
	}
	return out, nil
}

// Clear wipes the wrapped repository but keeps the salt so the key derived
// at construction stays valid.
func (r *EncryptedRepository) Clear(ctx context.Context) error {
	if err := r.inner.Clear(ctx); err != nil {
		return err
	}
	return r.inner.Set(ctx, SaltKey, r.salt)
}
