package repomanager

import (
	"context"
	"database/sql"

	"github.com/ebalakin/cartsync/internal/dbx"
	"github.com/ebalakin/cartsync/internal/server/repositories/categories"
	"github.com/ebalakin/cartsync/internal/server/repositories/items"
	"github.com/ebalakin/cartsync/internal/server/repositories/lists"
	"github.com/ebalakin/cartsync/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Lists(db dbx.DBTX) lists.Repository
	Items(db dbx.DBTX) items.Repository
	Categories(db dbx.DBTX) categories.Repository
}
