package appstate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/expenseshare/internal/client/models"
)

// RecentLimit is how many expenses the dashboard lists.
const RecentLimit = 5

type RecentExpense struct {
	models.Expense
	GroupName     string
	CreatedByName string
}

type GroupTotal struct {
	GroupID string
	Name    string
	Members int
	Total   decimal.Decimal
}

type Summary struct {
	TotalGroups   int
	TotalExpenses decimal.Decimal
	// TotalMembers counts distinct member ids across all groups.
	TotalMembers int
	Recent       []RecentExpense
	Groups       []GroupTotal
}

func (s *Store) Dashboard() Summary {
	return Summarize(s.Groups())
}

func Summarize(groups []models.Group) Summary {
	sum := Summary{
		TotalGroups:   len(groups),
		TotalExpenses: decimal.Zero,
	}

	members := make(map[string]struct{})
	var recent []RecentExpense
	for i := range groups {
		g := &groups[i]
		total := g.Total()
		sum.TotalExpenses = sum.TotalExpenses.Add(total)
		sum.Groups = append(sum.Groups, GroupTotal{
			GroupID: g.ID,
			Name:    g.Name,
			Members: len(g.Members),
			Total:   total,
		})
		for _, m := range g.Members {
			members[m.ID] = struct{}{}
		}
		for _, e := range g.Expenses {
			recent = append(recent, RecentExpense{
				Expense:       e,
				GroupName:     g.Name,
				CreatedByName: g.MemberName(e.CreatedBy),
			})
		}
	}
	sum.TotalMembers = len(members)

	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	sum.Recent = recent
	return sum
}
