package appstate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/expenseshare/internal/client/models"
)

// SeedGroups returns the sample groups the client starts with.
func SeedGroups(now time.Time) []models.Group {
	return []models.Group{
		{
			ID:          "group1",
			Name:        "Family Budget",
			Description: "Track our family expenses and savings goals",
			CreatedBy:   "user1",
			CreatedAt:   now,
			Members: []models.Member{
				{ID: "user2", Name: "Jane Doe", Email: "jane@example.com", PhoneNumber: "+1987654321"},
			},
			Expenses: []models.Expense{
				{
					ID:          "exp1",
					Amount:      decimal.RequireFromString("120.50"),
					Description: "Grocery shopping",
					Category:    models.CategoryFood,
					Date:        now,
					CreatedBy:   "user1",
					GroupID:     "group1",
				},
				{
					ID:          "exp2",
					Amount:      decimal.RequireFromString("45.00"),
					Description: "Gas",
					Category:    models.CategoryTransportation,
					Date:        now.Add(-24 * time.Hour),
					CreatedBy:   "user2",
					GroupID:     "group1",
				},
			},
			InviteCode: "ABC123",
		},
		{
			ID:          "group2",
			Name:        "Trip to Paris",
			Description: "Expenses for our vacation in Paris",
			CreatedBy:   "user1",
			CreatedAt:   now,
			Members: []models.Member{
				{ID: "user3", Name: "Mike Smith", Email: "mike@example.com", PhoneNumber: "+1122334455"},
			},
			Expenses:   []models.Expense{},
			InviteCode: "DEF456",
		},
	}
}
