package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/models"
)

func TestFamilyMembers_IsProtected(t *testing.T) {
	req := &fakeRequester{Family: &models.FamilyMembersResponse{
		Data: []models.FamilyMember{{ID: "1", Name: "Ravi"}},
	}}

	got, err := NewGroupService(req).FamilyMembers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.FamilyMember{{ID: "1", Name: "Ravi"}}, got)

	calls := req.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "GET", calls[0].Method)
	assert.Equal(t, PathFamilyMembers, calls[0].Path)
	assert.True(t, calls[0].Opts.RequireToken)
}

type staticToken string

func (s staticToken) Token(context.Context) (string, bool) { return string(s), s != "" }

func TestFamilyMembers_UnauthorizedFiresHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	client := api.New(srv.URL, api.WithTokenSource(staticToken("stale")))
	fired := 0
	client.SetUnauthorizedHandler(func(context.Context) { fired++ })

	_, err := NewGroupService(client).FamilyMembers(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, 1, fired)
}
