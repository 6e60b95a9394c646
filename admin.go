package sso

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Admin orchestrates the privileged mutations over users, roles, hubs, and
// menus. Every operation takes the caller's claims and runs the guard before
// touching storage; hub-scoped resources are always resolved against the
// caller's own hub.
type Admin struct {
	repo   RepositoryManager
	logger Logger
}

// NewAdmin creates the admin surface over the given repositories.
func NewAdmin(repo RepositoryManager) *Admin {
	return &Admin{
		repo:   repo,
		logger: defLogger{},
	}
}

func (a *Admin) WithLogger(logger Logger) *Admin {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// ensureAdmin evaluates the base admin policy. Roles and hubs are global
// resources, so no hub constraint applies beyond holding the admin role.
func (a *Admin) ensureAdmin(claims *SessionClaims) error {
	return Authorize(claims, Policy{Role: AdminRoleName, Scope: ScopeAny})
}

// ensureHubAdmin evaluates the admin policy scoped to a hub-bound resource.
// Admins do not get a cross-hub bypass here.
func (a *Admin) ensureHubAdmin(claims *SessionClaims, resourceHub int64) error {
	return Authorize(claims, Policy{Role: AdminRoleName, Scope: ScopeOwnHub, Hub: resourceHub})
}

// CreateRole creates a global role definition.
func (a *Admin) CreateRole(ctx context.Context, claims *SessionClaims, name string) (*Role, error) {
	if err := a.ensureAdmin(claims); err != nil {
		return nil, err
	}

	return a.repo.Roles().Create(ctx, &Role{Name: name})
}

// DeleteRole removes a role definition. The reserved base admin role is
// never deletable.
func (a *Admin) DeleteRole(ctx context.Context, claims *SessionClaims, roleID int64) error {
	if err := a.ensureAdmin(claims); err != nil {
		return err
	}

	if err := CanDeleteRole(roleID); err != nil {
		return err
	}

	return a.repo.Roles().Delete(ctx, roleID)
}

// ListRoles returns all role definitions.
func (a *Admin) ListRoles(ctx context.Context, claims *SessionClaims) ([]*Role, error) {
	if err := a.ensureAdmin(claims); err != nil {
		return nil, err
	}

	return a.repo.Roles().List(ctx)
}

// CreateHub creates a tenant.
func (a *Admin) CreateHub(ctx context.Context, claims *SessionClaims, name string) (*Hub, error) {
	if err := a.ensureAdmin(claims); err != nil {
		return nil, err
	}

	return a.repo.Hubs().Create(ctx, &Hub{Name: name})
}

// DeleteHub removes a tenant. Admins cannot delete the hub they currently
// belong to.
func (a *Admin) DeleteHub(ctx context.Context, claims *SessionClaims, hubID int64) error {
	if err := a.ensureAdmin(claims); err != nil {
		return err
	}

	if err := CanDeleteHub(claims, hubID); err != nil {
		return err
	}

	return a.repo.Hubs().Delete(ctx, hubID)
}

// ListUsers returns the identities of the caller's own hub.
func (a *Admin) ListUsers(ctx context.Context, claims *SessionClaims) ([]*User, error) {
	if claims == nil {
		return nil, ErrMissingRole
	}

	if err := a.ensureHubAdmin(claims, claims.HubID); err != nil {
		return nil, err
	}

	return a.repo.Users().ListByHub(ctx, claims.HubID)
}

// DeleteUser removes an identity from the caller's hub. Self-deletion is
// always refused, and targets outside the caller's hub are denied as a hub
// mismatch.
func (a *Admin) DeleteUser(ctx context.Context, claims *SessionClaims, userID int64) error {
	if claims == nil {
		return ErrMissingRole
	}

	if err := a.ensureHubAdmin(claims, claims.HubID); err != nil {
		return err
	}

	if err := CanDeleteUser(claims, userID); err != nil {
		return err
	}

	user, err := a.repo.Users().FindByID(ctx, userID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ErrIdentityNotFound
		}
		return err
	}

	if err := a.ensureHubAdmin(claims, user.HubID); err != nil {
		return err
	}

	return a.repo.Users().Delete(ctx, userID)
}

// AssignRolesAndUpdateUser replaces a user's role set and applies profile
// updates, provided the user belongs to the caller's hub.
func (a *Admin) AssignRolesAndUpdateUser(ctx context.Context, claims *SessionClaims, userID int64, name string, roleIDs []int64) error {
	if claims == nil {
		return ErrMissingRole
	}

	if err := a.ensureHubAdmin(claims, claims.HubID); err != nil {
		return err
	}

	user, err := a.repo.Users().FindByID(ctx, userID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ErrIdentityNotFound
		}
		return err
	}

	if err := a.ensureHubAdmin(claims, user.HubID); err != nil {
		return err
	}

	if err := a.repo.Users().AssignRoles(ctx, userID, roleIDs); err != nil {
		return err
	}

	user.Name = name
	return a.repo.Users().Update(ctx, user)
}

// CreateMenu creates a navigation entry in the caller's hub.
func (a *Admin) CreateMenu(ctx context.Context, claims *SessionClaims, name, url string) (*Menu, error) {
	if claims == nil {
		return nil, ErrMissingRole
	}

	if err := a.ensureHubAdmin(claims, claims.HubID); err != nil {
		return nil, err
	}

	return a.repo.Menus().Create(ctx, &Menu{
		HubID: claims.HubID,
		Name:  name,
		URL:   url,
	})
}

// DeleteMenu removes a navigation entry if it exists in the caller's hub.
func (a *Admin) DeleteMenu(ctx context.Context, claims *SessionClaims, menuID int64) error {
	if claims == nil {
		return ErrMissingRole
	}

	if err := a.ensureHubAdmin(claims, claims.HubID); err != nil {
		return err
	}

	menu, err := a.repo.Menus().GetByID(ctx, menuID, claims.HubID)
	if err != nil {
		return err
	}

	return a.repo.Menus().Delete(ctx, menu.ID)
}
