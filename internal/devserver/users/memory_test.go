package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/expenseshare/internal/common"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := r.GetByPhone(ctx, "+911")
	assert.ErrorIs(t, err, common.ErrNotFound)

	a, err := r.Create(ctx, &User{Phone: "+912", CreatedAt: t0.Add(time.Hour)})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	b, err := r.Create(ctx, &User{ID: "fixed", Phone: "+911", CreatedAt: t0})
	require.NoError(t, err)
	assert.Equal(t, "fixed", b.ID)

	again, err := r.Create(ctx, &User{Phone: "+912"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)

	got, err := r.GetByPhone(ctx, "+912")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "fixed", list[0].ID)

	// returned values are copies
	list[0].Name = "changed"
	b2, _ := r.GetByPhone(ctx, "+911")
	assert.Empty(t, b2.Name)
}
