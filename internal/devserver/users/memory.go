package users

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/expenseshare/internal/common"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	byPhone map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byPhone: make(map[string]*User)}
}

// Create assigns a uuid when the user has no id. A second user with the
// same phone replaces nothing and returns the existing record.
func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byPhone[user.Phone]; ok {
		c := *u
		return &c, nil
	}
	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.byPhone[u.Phone] = &u
	c := u
	return &c, nil
}

func (r *MemoryRepository) GetByPhone(ctx context.Context, phone string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byPhone[phone]
	if !ok {
		return nil, common.ErrNotFound
	}
	c := *u
	return &c, nil
}

// List returns all users ordered by creation time.
func (r *MemoryRepository) List(ctx context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*User, 0, len(r.byPhone))
	for _, u := range r.byPhone {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Phone < out[j].Phone
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
