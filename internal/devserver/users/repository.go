package users

import (
	"context"
)

// Repository stores the users known to the development backend.
// GetByPhone returns common.ErrNotFound for an unknown number.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}
