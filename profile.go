package sso

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// UpdateCurrentUser applies a profile update to the session's own identity:
// a new display name and, when the payload carries one, a new password. The
// target is resolved by the claims' subject and hub, so a session can never
// update anyone else. This is the closing step of the recovery flow: the
// recovered session sets a fresh password here.
func UpdateCurrentUser(ctx context.Context, repo Users, claims *SessionClaims, req UpdateProfileRequest) (*User, error) {
	if claims == nil {
		return nil, ErrUnableToFindSession
	}

	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid profile payload")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	// The subject must still live in the hub the session was issued for.
	if user.HubID != claims.HubID {
		return nil, ErrIdentityNotFound
	}

	user.Name = req.Name

	if req.Password != "" {
		hash, err := HashPassword(req.Password)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password provided")
		}
		user.PasswordHash = hash
	}

	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
