package sso

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type roles struct {
	db *bun.DB
}

var _ Roles = (*roles)(nil)

func NewRolesRepository(db *bun.DB) Roles {
	return &roles{db: db}
}

func (r *roles) GetByID(ctx context.Context, id int64) (*Role, error) {
	role := new(Role)
	err := r.db.NewSelect().
		Model(role).
		Where("rol.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "role not found")
	}
	return role, nil
}

func (r *roles) List(ctx context.Context) ([]*Role, error) {
	var list []*Role
	err := r.db.NewSelect().
		Model(&list).
		Order("rol.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list roles")
	}
	return list, nil
}

func (r *roles) Create(ctx context.Context, role *Role) (*Role, error) {
	if role.Name == "" {
		return nil, goerrors.New("role name is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	if _, err := r.db.NewInsert().Model(role).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create role")
	}

	return role, nil
}

// Delete removes a role definition and its assignments. Callers are expected
// to have run CanDeleteRole first; the reserved admin role is refused here as
// well so a storage-level caller cannot bypass the invariant.
func (r *roles) Delete(ctx context.Context, id int64) error {
	if id == AdminRoleID {
		return ErrSelfActionForbidden
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*UserRoleAssignment)(nil)).
			Where("role_id = ?", id).
			Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear role assignments")
		}

		if _, err := tx.NewDelete().
			Model((*Role)(nil)).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete role")
		}

		return nil
	})
}
