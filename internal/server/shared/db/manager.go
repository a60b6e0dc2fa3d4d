// Package db wires database handles to repositories. A RepositoryManager
// owns the connection, builds repositories over it (or over a transaction)
// and runs the schema migrations for its dialect.
package db

import (
	"context"
	"database/sql"

	"github.com/smart-mailbox/backend/internal/dbx"
	"github.com/smart-mailbox/backend/internal/server/photos"
	"github.com/smart-mailbox/backend/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users(db dbx.DBTX) users.Repository
	Photos(db dbx.DBTX) photos.Repository
}
