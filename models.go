package sso

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	// AdminRoleID is the reserved primary key of the base admin role. The
	// record must never be deleted.
	AdminRoleID int64 = 1
	// AdminRoleName is the role name that authorizes admin policies.
	AdminRoleName = "admin"
)

// User is the identity record scoped to one hub. Email is unique within a
// hub, not globally.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Email         string    `bun:"email,notnull" json:"email,omitempty"`
	Name          string    `bun:"name" json:"name,omitempty"`
	HubID         int64     `bun:"hub_id,notnull" json:"hub_id,omitempty"`
	Hub           *Hub      `bun:"rel:belongs-to,join:hub_id=id" json:"hub,omitempty"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	Roles         []*Role   `bun:"m2m:user_roles,join:User=Role" json:"roles,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// RoleNames returns the names of the user's assigned roles preserving the
// load order.
func (u *User) RoleNames() []string {
	if len(u.Roles) == 0 {
		return nil
	}
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		if role != nil {
			names = append(names, role.Name)
		}
	}
	return names
}

// HasRole reports whether the user holds the named role. Comparison is
// case-sensitive.
func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role != nil && role.Name == name {
			return true
		}
	}
	return false
}

// Hub is the tenant boundary. Names are globally unique.
type Hub struct {
	bun.BaseModel `bun:"table:hubs,alias:hub"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string    `bun:"name,notnull,unique" json:"name,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Role is a global role definition. Assignment to users is hub-scoped via the
// user record, the role itself is not.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string    `bun:"name,notnull,unique" json:"name,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// UserRoleAssignment joins users to roles.
type UserRoleAssignment struct {
	bun.BaseModel `bun:"table:user_roles,alias:ur"`
	UserID        int64 `bun:"user_id,pk" json:"user_id,omitempty"`
	User          *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	RoleID        int64 `bun:"role_id,pk" json:"role_id,omitempty"`
	Role          *Role `bun:"rel:belongs-to,join:role_id=id" json:"-"`
}

// Menu is a hub-scoped navigation entry managed by hub admins.
type Menu struct {
	bun.BaseModel `bun:"table:menus,alias:mnu"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	HubID         int64     `bun:"hub_id,notnull" json:"hub_id,omitempty"`
	Hub           *Hub      `bun:"rel:belongs-to,join:hub_id=id" json:"hub,omitempty"`
	Name          string    `bun:"name,notnull" json:"name,omitempty"`
	URL           string    `bun:"url,notnull" json:"url,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
