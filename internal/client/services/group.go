package services

import (
	"context"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/models"
)

const PathFamilyMembers = "/family/members"

type GroupService interface {
	// FamilyMembers lists the members known to the signed-in user. It is a
	// protected call: a 401 answer fires the client's unauthorized handler.
	FamilyMembers(ctx context.Context) ([]models.FamilyMember, error)
}

type groupService struct {
	api Requester
}

func NewGroupService(api Requester) GroupService {
	return &groupService{api: api}
}

func (g *groupService) FamilyMembers(ctx context.Context) ([]models.FamilyMember, error) {
	var resp models.FamilyMembersResponse
	if err := g.api.Get(ctx, PathFamilyMembers, &resp, api.RequestOptions{RequireToken: true}); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
