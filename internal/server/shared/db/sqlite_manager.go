package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/smart-mailbox/backend/internal/dbx"
	"github.com/smart-mailbox/backend/internal/server/migrations"
	"github.com/smart-mailbox/backend/internal/server/photos"
	"github.com/smart-mailbox/backend/internal/server/users"
)

// SQLiteRepositoryManager backs the local variant of the service with a
// single database file.
type SQLiteRepositoryManager struct {
	db *sql.DB
}

func (m *SQLiteRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Photos(db dbx.DBTX) photos.Repository {
	return photos.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "sqlite"); err != nil {
		return err
	}

	return nil
}

func NewSQLiteRepositoryManager(path string) (*SQLiteRepositoryManager, error) {

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &SQLiteRepositoryManager{db: db}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
