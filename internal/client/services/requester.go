package services

import (
	"context"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/models"
)

// Requester is the part of *api.Client the services rely on.
type Requester interface {
	Get(ctx context.Context, path string, out any, opts api.RequestOptions) error
	Post(ctx context.Context, path string, body, out any, opts api.RequestOptions) error
}

// CredentialStore persists a credential together with the cached profile.
type CredentialStore interface {
	Save(ctx context.Context, token string, profile *models.Profile) error
}
