package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an expense.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryUtilities      Category = "Utilities"
	CategoryShopping       Category = "Shopping"
	CategoryHealth         Category = "Health"
	CategoryOther          Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryShopping,
	CategoryHealth,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Member is a participant of a group.
type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
}

type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedBy   string          `json:"createdBy"`
	GroupID     string          `json:"groupId"`
}

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	Members     []Member  `json:"members"`
	Expenses    []Expense `json:"expenses"`
	InviteCode  string    `json:"inviteCode"`
}

// Total sums the group's expenses.
func (g *Group) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range g.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// MemberName returns the display name of the member with the given id, or
// "Unknown".
func (g *Group) MemberName(id string) string {
	for _, m := range g.Members {
		if m.ID == id {
			return m.Name
		}
	}
	return "Unknown"
}

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// FamilyMember is an entry of GET /family/members.
type FamilyMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
}

// FamilyMembersResponse wraps GET /family/members.
type FamilyMembersResponse struct {
	Data    []FamilyMember `json:"data"`
	Message string         `json:"message,omitempty"`
}
