package sso

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

// FindByEmailAndHub resolves an identity by its hub-unique email. Emails are
// matched case-insensitively so the lookup agrees with the lower-cased email
// carried in claims.
func (r *users) FindByEmailAndHub(ctx context.Context, email string, hubID int64) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Relation("Roles").
		Where("lower(usr.email) = ?", strings.ToLower(email)).
		Where("usr.hub_id = ?", hubID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "user not found by email and hub")
	}
	return user, nil
}

func (r *users) FindByID(ctx context.Context, id int64) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Relation("Roles").
		Where("usr.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "user not found by id")
	}
	return user, nil
}

func (r *users) Register(ctx context.Context, user *User) (*User, error) {
	if user.Email == "" {
		return nil, goerrors.New("email is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	user.Email = strings.ToLower(user.Email)

	if _, err := r.db.NewInsert().Model(user).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create user")
	}

	return user, nil
}

func (r *users) ListByHub(ctx context.Context, hubID int64) ([]*User, error) {
	var list []*User
	err := r.db.NewSelect().
		Model(&list).
		Relation("Roles").
		Where("usr.hub_id = ?", hubID).
		Order("usr.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users")
	}
	return list, nil
}

func (r *users) Update(ctx context.Context, user *User) error {
	res, err := r.db.NewUpdate().
		Model(user).
		Column("name", "password_hash", "updated_at").
		WherePK().
		Where("usr.hub_id = ?", user.HubID).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update user")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goerrors.New("user not found for update", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	}

	return nil
}

// AssignRoles replaces the user's role set with the given role ids inside a
// single transaction.
func (r *users) AssignRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*UserRoleAssignment)(nil)).
			Where("user_id = ?", userID).
			Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear role assignments")
		}

		if len(roleIDs) == 0 {
			return nil
		}

		assignments := make([]*UserRoleAssignment, 0, len(roleIDs))
		for _, roleID := range roleIDs {
			assignments = append(assignments, &UserRoleAssignment{
				UserID: userID,
				RoleID: roleID,
			})
		}

		if _, err := tx.NewInsert().Model(&assignments).Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert role assignments")
		}

		return nil
	})
}

func (r *users) Delete(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*UserRoleAssignment)(nil)).
			Where("user_id = ?", id).
			Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear role assignments")
		}

		if _, err := tx.NewDelete().
			Model((*User)(nil)).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
		}

		return nil
	})
}
