// Package appstate is the in-memory group, expense and notification state of
// the client, plus the dashboard aggregates computed from it.
//
// Identifiers are unique within their owning collection. Every getter returns
// copies; callers never share slices with the store.
package appstate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/expenseshare/internal/client/models"
	"github.com/dmitrijs2005/expenseshare/internal/common"
)

var (
	ErrGroupNotFound        = fmt.Errorf("group %w", common.ErrNotFound)
	ErrMemberNotFound       = fmt.Errorf("member %w", common.ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", common.ErrNotFound)
	ErrMemberExists         = errors.New("member already in group")
	ErrInvalidGroup         = errors.New("group name is required")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidCategory      = errors.New("unknown category")
)

type Store struct {
	mu            sync.RWMutex
	groups        []models.Group
	selected      string
	notifications []models.Notification

	currentUser string
	now         func() time.Time
	newID       func() string
}

type Option func(*Store)

func WithGroups(groups []models.Group) Option {
	return func(s *Store) { s.groups = cloneGroups(groups) }
}

// WithCurrentUser sets the id recorded as creator of new groups and expenses.
func WithCurrentUser(id string) Option {
	return func(s *Store) { s.currentUser = id }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func New(opts ...Option) *Store {
	s := &Store{
		currentUser: "user1",
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Groups() []models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneGroups(s.groups)
}

func (s *Store) Group(id string) (models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Group{}, ErrGroupNotFound
	}
	return cloneGroup(s.groups[i]), nil
}

func (s *Store) CreateGroup(name, description string) (models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Group{}, ErrInvalidGroup
	}
	code, err := common.MakeRandHexString(3)
	if err != nil {
		return models.Group{}, err
	}

	g := models.Group{
		ID:          s.newID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   s.currentUser,
		CreatedAt:   s.now(),
		Members:     []models.Member{},
		Expenses:    []models.Expense{},
		InviteCode:  strings.ToUpper(code),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append(s.groups, g)
	return cloneGroup(g), nil
}

// AddMember invites phone into the group. A phone number already present is
// rejected with ErrMemberExists.
func (s *Store) AddMember(groupID, phone string) (models.Member, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return models.Member{}, common.ErrInvalidPhone
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(groupID)
	if i < 0 {
		return models.Member{}, ErrGroupNotFound
	}
	for _, m := range s.groups[i].Members {
		if m.PhoneNumber == phone {
			return models.Member{}, ErrMemberExists
		}
	}

	m := models.Member{ID: s.newID(), Name: phone, PhoneNumber: phone}
	s.groups[i].Members = append(s.groups[i].Members, m)
	return m, nil
}

func (s *Store) RemoveMember(groupID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(groupID)
	if i < 0 {
		return ErrGroupNotFound
	}
	members := s.groups[i].Members
	for j, m := range members {
		if m.ID == memberID {
			s.groups[i].Members = append(members[:j:j], members[j+1:]...)
			return nil
		}
	}
	return ErrMemberNotFound
}

// ExpenseInput is what the user supplies for a new expense.
type ExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	Category    models.Category
	// Date defaults to now when zero.
	Date time.Time
}

func (s *Store) AddExpense(groupID string, in ExpenseInput) (models.Expense, error) {
	if !in.Amount.IsPositive() {
		return models.Expense{}, ErrInvalidAmount
	}
	if !in.Category.Valid() {
		return models.Expense{}, fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}
	if in.Date.IsZero() {
		in.Date = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(groupID)
	if i < 0 {
		return models.Expense{}, ErrGroupNotFound
	}

	e := models.Expense{
		ID:          s.newID(),
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Date:        in.Date,
		CreatedBy:   s.currentUser,
		GroupID:     groupID,
	}
	s.groups[i].Expenses = append(s.groups[i].Expenses, e)
	return e, nil
}

func (s *Store) Select(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if groupID != "" && s.indexOf(groupID) < 0 {
		return ErrGroupNotFound
	}
	s.selected = groupID
	return nil
}

func (s *Store) Selected() (models.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(s.selected)
	if s.selected == "" || i < 0 {
		return models.Group{}, false
	}
	return cloneGroup(s.groups[i]), true
}

func (s *Store) Notify(message string, typ models.NotificationType) models.Notification {
	n := models.Notification{
		ID:        s.newID(),
		Message:   message,
		Type:      typ,
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	return n
}

// Notifications returns the notifications, newest first.
func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	out := append([]models.Notification(nil), s.notifications...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (s *Store) Unread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, x := range s.notifications {
		if !x.Read {
			n++
		}
	}
	return n
}

func (s *Store) indexOf(groupID string) int {
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			return i
		}
	}
	return -1
}

func cloneGroup(g models.Group) models.Group {
	g.Members = append([]models.Member(nil), g.Members...)
	g.Expenses = append([]models.Expense(nil), g.Expenses...)
	return g
}

func cloneGroups(groups []models.Group) []models.Group {
	out := make([]models.Group, len(groups))
	for i, g := range groups {
		out[i] = cloneGroup(g)
	}
	return out
}
