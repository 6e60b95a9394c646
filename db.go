package sso

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenSQLite opens a bun database over the embedded sqlite driver using the
// configured DSN.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to open sqlite database")
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to enable foreign keys")
	}

	return db, nil
}

// CreateSchema creates the tables for every model if they do not exist yet.
// Intended for bootstrap and tests; production deployments own migrations.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	db.RegisterModel((*UserRoleAssignment)(nil))

	models := []any{
		(*Hub)(nil),
		(*Role)(nil),
		(*User)(nil),
		(*UserRoleAssignment)(nil),
		(*Menu)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to create table")
		}
	}

	return nil
}
