package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/smart-mailbox/backend/internal/dbx"
	"github.com/smart-mailbox/backend/internal/server/migrations"
	"github.com/smart-mailbox/backend/internal/server/photos"
	"github.com/smart-mailbox/backend/internal/server/users"
)

type PostgresRepositoryManager struct {
	db *sql.DB
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Photos(db dbx.DBTX) photos.Repository {
	return photos.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "postgres"); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{db: db}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
