package sso

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// RegisterUser creates a new identity in the given hub with a bcrypt-hashed
// secret. The email is stored lower-cased so the hub-unique constraint and
// the claims normalization agree.
func RegisterUser(ctx context.Context, repo Users, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password provided")
	}

	user := &User{
		Email:        strings.ToLower(req.Email),
		Name:         req.Name,
		HubID:        req.HubID,
		PasswordHash: hash,
	}

	return repo.Register(ctx, user)
}

// ListHubs returns every hub, for the login screen's hub selector. The hub
// list is intentionally unauthenticated.
func ListHubs(ctx context.Context, repo Hubs) ([]*Hub, error) {
	return repo.List(ctx)
}
