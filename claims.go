package sso

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the self-contained payload of every issued token. Once a
// token is verified no storage lookup is required to authorize a request,
// except where a policy explicitly re-checks current state.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	HubID int64    `json:"hub_id"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// UserID parses the numeric identity id out of the subject claim.
func (c *SessionClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenMalformed
	}
	return id, nil
}

// HasRole checks for an exact, case-sensitive role name. There is no role
// hierarchy: "admin" authorizes admin policies only because the identity
// holds that literal role name.
func (c *SessionClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the claims carry the reserved admin role.
func (c *SessionClaims) IsAdmin() bool {
	return c.HasRole(AdminRoleName)
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// BuildClaims derives a canonical claim set from an identity record. The
// email is lower-cased, the display name is carried verbatim (empty allowed),
// and the role names keep the order they were loaded in. The function
// performs no I/O.
func BuildClaims(user *User, lifetime time.Duration) *SessionClaims {
	now := time.Now()

	var roles []string
	if names := user.RoleNames(); len(names) > 0 {
		roles = make([]string, len(names))
		copy(roles, names)
	}

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		Email: strings.ToLower(user.Email),
		HubID: user.HubID,
		Name:  user.Name,
		Roles: roles,
	}

	ensureTokenID(&claims.RegisteredClaims)

	return claims
}

// claimSubject stringifies an identity id the way BuildClaims does.
func claimSubject(user *User) string {
	if user == nil {
		return ""
	}
	return strconv.FormatInt(user.ID, 10)
}

// ensureTokenID assigns a jti so individual tokens are distinguishable in
// logs even when issued for the same identity within one second.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
