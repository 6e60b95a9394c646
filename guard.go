package sso

// HubScope selects how a policy constrains the tenant dimension.
type HubScope string

const (
	// ScopeAny places no hub constraint on the operation.
	ScopeAny HubScope = "any"
	// ScopeOwnHub requires the resource's hub to equal the caller's hub.
	// There is no admin bypass: admin actions on hub-scoped resources stay
	// confined to the admin's own hub.
	ScopeOwnHub HubScope = "own"
	// ScopeHub requires a specific hub, with a cross-hub bypass for admins.
	// Used for globally scoped resources such as roles and hubs themselves.
	ScopeHub HubScope = "hub"
)

// Policy is the access requirement the boundary layer attaches to an
// operation: an optional required role plus a hub-scope mode. Evaluating a
// policy never mutates it or the claims.
type Policy struct {
	// Role, when non-empty, must appear verbatim in the claims' role set.
	Role string
	// Scope selects the hub constraint.
	Scope HubScope
	// Hub is the resource hub for ScopeOwnHub, or the required hub for
	// ScopeHub. Ignored for ScopeAny.
	Hub int64
}

// Authorize evaluates the policy against the claims. It returns nil for
// Allow, or ErrMissingRole / ErrWrongHub for a typed Deny. Rules run in
// order: role first, hub scope second.
func Authorize(claims *SessionClaims, policy Policy) error {
	if claims == nil {
		return ErrMissingRole
	}

	if policy.Role != "" && !claims.HasRole(policy.Role) {
		return ErrMissingRole
	}

	switch policy.Scope {
	case ScopeOwnHub:
		if claims.HubID != policy.Hub {
			return ErrWrongHub
		}
	case ScopeHub:
		if claims.HubID != policy.Hub && !claims.IsAdmin() {
			return ErrWrongHub
		}
	}

	return nil
}

// CanDeleteUser layers the self-protection rule over the guard: an identity
// may never delete its own account.
func CanDeleteUser(claims *SessionClaims, targetUserID int64) error {
	if claims == nil {
		return ErrSelfActionForbidden
	}

	callerID, err := claims.UserID()
	if err != nil {
		return err
	}

	if callerID == targetUserID {
		return ErrSelfActionForbidden
	}

	return nil
}

// CanDeleteHub forbids deleting the hub the caller currently belongs to.
func CanDeleteHub(claims *SessionClaims, hubID int64) error {
	if claims == nil {
		return ErrSelfActionForbidden
	}

	if claims.HubID == hubID {
		return ErrSelfActionForbidden
	}

	return nil
}

// CanDeleteRole forbids deleting the reserved base admin role, regardless of
// who asks.
func CanDeleteRole(roleID int64) error {
	if roleID == AdminRoleID {
		return ErrSelfActionForbidden
	}

	return nil
}
