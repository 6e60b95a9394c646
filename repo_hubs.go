package sso

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type hubs struct {
	db *bun.DB
}

var _ Hubs = (*hubs)(nil)

func NewHubsRepository(db *bun.DB) Hubs {
	return &hubs{db: db}
}

func (r *hubs) GetByID(ctx context.Context, id int64) (*Hub, error) {
	hub := new(Hub)
	err := r.db.NewSelect().
		Model(hub).
		Where("hub.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "hub not found")
	}
	return hub, nil
}

func (r *hubs) List(ctx context.Context) ([]*Hub, error) {
	var list []*Hub
	err := r.db.NewSelect().
		Model(&list).
		Order("hub.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list hubs")
	}
	return list, nil
}

func (r *hubs) Create(ctx context.Context, hub *Hub) (*Hub, error) {
	if hub.Name == "" {
		return nil, goerrors.New("hub name is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	if _, err := r.db.NewInsert().Model(hub).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create hub")
	}

	return hub, nil
}

func (r *hubs) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.NewDelete().
		Model((*Hub)(nil)).
		Where("id = ?", id).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete hub")
	}
	return nil
}
