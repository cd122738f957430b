package appstate

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/expenseshare/internal/client/models"
	"github.com/dmitrijs2005/expenseshare/internal/common"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStore(opts ...Option) *Store {
	n := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string { n++; return fmt.Sprintf("id%d", n) }),
	}
	return New(append(base, opts...)...)
}

func TestCreateGroup(t *testing.T) {
	s := newTestStore()

	g, err := s.CreateGroup("  Flatmates ", "rent and bills")
	require.NoError(t, err)
	assert.Equal(t, "id1", g.ID)
	assert.Equal(t, "Flatmates", g.Name)
	assert.Equal(t, "user1", g.CreatedBy)
	assert.Equal(t, fixedNow, g.CreatedAt)
	assert.Len(t, g.InviteCode, 6)

	_, err = s.CreateGroup("   ", "")
	assert.ErrorIs(t, err, ErrInvalidGroup)

	assert.Len(t, s.Groups(), 1)
}

func TestCreateGroup_UniqueIDsByDefault(t *testing.T) {
	s := New()
	a, err := s.CreateGroup("a", "")
	require.NoError(t, err)
	b, err := s.CreateGroup("b", "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMembers(t *testing.T) {
	s := newTestStore()
	g, err := s.CreateGroup("Trip", "")
	require.NoError(t, err)

	m, err := s.AddMember(g.ID, "+919876543210")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", m.PhoneNumber)

	_, err = s.AddMember(g.ID, "+919876543210")
	assert.ErrorIs(t, err, ErrMemberExists)

	_, err = s.AddMember(g.ID, " ")
	assert.ErrorIs(t, err, common.ErrInvalidPhone)

	_, err = s.AddMember("missing", "+911111111111")
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, s.RemoveMember(g.ID, m.ID))
	assert.ErrorIs(t, s.RemoveMember(g.ID, m.ID), ErrMemberNotFound)

	got, err := s.Group(g.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Members)
}

func TestAddExpense(t *testing.T) {
	s := newTestStore()
	g, err := s.CreateGroup("Trip", "")
	require.NoError(t, err)

	e, err := s.AddExpense(g.ID, ExpenseInput{
		Amount:      decimal.RequireFromString("12.34"),
		Description: "Taxi",
		Category:    models.CategoryTransportation,
	})
	require.NoError(t, err)
	assert.Equal(t, g.ID, e.GroupID)
	assert.Equal(t, fixedNow, e.Date)
	assert.Equal(t, "user1", e.CreatedBy)

	_, err = s.AddExpense(g.ID, ExpenseInput{Amount: decimal.Zero, Category: models.CategoryFood})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = s.AddExpense(g.ID, ExpenseInput{Amount: decimal.NewFromInt(1), Category: "Rent"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = s.AddExpense("missing", ExpenseInput{Amount: decimal.NewFromInt(1), Category: models.CategoryOther})
	assert.ErrorIs(t, err, ErrGroupNotFound)

	got, err := s.Group(g.ID)
	require.NoError(t, err)
	assert.True(t, got.Total().Equal(decimal.RequireFromString("12.34")))
}

func TestGroupsReturnsCopies(t *testing.T) {
	s := newTestStore(WithGroups(SeedGroups(fixedNow)))

	groups := s.Groups()
	groups[0].Name = "changed"
	groups[0].Members[0].Name = "changed"

	g, err := s.Group("group1")
	require.NoError(t, err)
	assert.Equal(t, "Family Budget", g.Name)
	assert.Equal(t, "Jane Doe", g.Members[0].Name)
}

func TestSelect(t *testing.T) {
	s := newTestStore(WithGroups(SeedGroups(fixedNow)))

	_, ok := s.Selected()
	assert.False(t, ok)

	require.NoError(t, s.Select("group2"))
	g, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "Trip to Paris", g.Name)

	assert.ErrorIs(t, s.Select("nope"), ErrGroupNotFound)
	require.NoError(t, s.Select(""))
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestNotifications(t *testing.T) {
	now := fixedNow
	s := newTestStore(WithClock(func() time.Time { now = now.Add(time.Second); return now }))

	first := s.Notify("group created", models.NotificationSuccess)
	second := s.Notify("member added", models.NotificationInfo)
	assert.Equal(t, 2, s.Unread())

	list := s.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	require.NoError(t, s.MarkRead(first.ID))
	assert.Equal(t, 1, s.Unread())
	assert.ErrorIs(t, s.MarkRead("nope"), ErrNotificationNotFound)
}
