package sso

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type menus struct {
	db *bun.DB
}

var _ Menus = (*menus)(nil)

func NewMenusRepository(db *bun.DB) Menus {
	return &menus{db: db}
}

// GetByID is hub-scoped: a menu belonging to another hub is a miss, not a
// leak.
func (r *menus) GetByID(ctx context.Context, id, hubID int64) (*Menu, error) {
	menu := new(Menu)
	err := r.db.NewSelect().
		Model(menu).
		Where("mnu.id = ?", id).
		Where("mnu.hub_id = ?", hubID).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "menu not found")
	}
	return menu, nil
}

func (r *menus) ListByHub(ctx context.Context, hubID int64) ([]*Menu, error) {
	var list []*Menu
	err := r.db.NewSelect().
		Model(&list).
		Where("mnu.hub_id = ?", hubID).
		Order("mnu.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list menus")
	}
	return list, nil
}

func (r *menus) Create(ctx context.Context, menu *Menu) (*Menu, error) {
	if menu.Name == "" || menu.URL == "" {
		return nil, goerrors.New("menu name and url are required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	if _, err := r.db.NewInsert().Model(menu).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create menu")
	}

	return menu, nil
}

func (r *menus) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.NewDelete().
		Model((*Menu)(nil)).
		Where("id = ?", id).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete menu")
	}
	return nil
}
