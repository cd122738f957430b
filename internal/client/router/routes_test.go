package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Match(t *testing.T) {
	table := NewTable()

	tests := []struct {
		path   string
		screen string
		access Access
		vars   map[string]string
	}{
		{"/", ScreenDashboard, Protected, nil},
		{"/dashboard", ScreenDashboard, Protected, nil},
		{"/groups", ScreenGroups, Protected, nil},
		{"/groups/new", ScreenNewGroup, Protected, nil},
		{"/groups/42", ScreenGroup, Protected, map[string]string{"groupId": "42"}},
		{"/login", ScreenLogin, PublicOnly, nil},
		{"/verify-otp", ScreenVerifyOTP, PublicOnly, nil},
		{"/nope", ScreenNotFound, Public, nil},
		{"/groups/42/extra", ScreenNotFound, Public, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m := table.Match(tt.path)
			assert.Equal(t, tt.screen, m.Route.Screen)
			assert.Equal(t, tt.access, m.Route.Access)
			if tt.vars != nil {
				assert.Equal(t, tt.vars, m.Vars)
			}
		})
	}
}

func TestGroupID(t *testing.T) {
	table := NewTable()

	id, err := GroupID(table.Match("/groups/g-1"))
	assert.NoError(t, err)
	assert.Equal(t, "g-1", id)

	_, err = GroupID(table.Match("/groups"))
	assert.Error(t, err)
}
