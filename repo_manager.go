package sso

import (
	"context"
	"database/sql"
	"errors"
	"log"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the storage surface for identity records. The auth core only uses
// the embedded read contract; the remaining methods serve registration and
// the admin surface.
type Users interface {
	IdentityRepository

	Register(ctx context.Context, user *User) (*User, error)
	ListByHub(ctx context.Context, hubID int64) ([]*User, error)
	Update(ctx context.Context, user *User) error
	AssignRoles(ctx context.Context, userID int64, roleIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// Hubs manages tenant records.
type Hubs interface {
	GetByID(ctx context.Context, id int64) (*Hub, error)
	List(ctx context.Context) ([]*Hub, error)
	Create(ctx context.Context, hub *Hub) (*Hub, error)
	Delete(ctx context.Context, id int64) error
}

// Roles manages global role definitions.
type Roles interface {
	GetByID(ctx context.Context, id int64) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
	Create(ctx context.Context, role *Role) (*Role, error)
	Delete(ctx context.Context, id int64) error
}

// Menus manages hub-scoped navigation entries.
type Menus interface {
	GetByID(ctx context.Context, id, hubID int64) (*Menu, error)
	ListByHub(ctx context.Context, hubID int64) ([]*Menu, error)
	Create(ctx context.Context, menu *Menu) (*Menu, error)
	Delete(ctx context.Context, id int64) error
}

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() Users
	Hubs() Hubs
	Roles() Roles
	Menus() Menus
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Validate() error
	MustValidate()
}

type mngr struct {
	db    *bun.DB
	users Users
	hubs  Hubs
	roles Roles
	menus Menus
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	// bun requires join models to be registered before m2m relations load.
	db.RegisterModel((*UserRoleAssignment)(nil))

	return &mngr{
		db:    db,
		users: NewUsersRepository(db),
		hubs:  NewHubsRepository(db),
		roles: NewRolesRepository(db),
		menus: NewMenusRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.hubs == nil {
		return errors.New("repository hubs should be initialized")
	}

	if m.roles == nil {
		return errors.New("repository roles should be initialized")
	}

	if m.menus == nil {
		return errors.New("repository menus should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users { return m.users }
func (m mngr) Hubs() Hubs   { return m.hubs }
func (m mngr) Roles() Roles { return m.roles }
func (m mngr) Menus() Menus { return m.menus }

// wrapNotFound converts sql.ErrNoRows into the rich not-found error the rest
// of the package checks with goerrors.IsNotFound.
func wrapNotFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return goerrors.New(msg, goerrors.CategoryNotFound).WithCode(goerrors.CodeNotFound)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg)
}
