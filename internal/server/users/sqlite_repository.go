package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/smart-mailbox/backend/internal/dbx"
	"github.com/smart-mailbox/backend/internal/shared"
)

// SQLiteRepository implements user storage for the local variant.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *User) (*User, error) {

	query := `INSERT INTO users (id, username, password, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Password, user.CreatedAt)

	if err != nil {
		// a concurrent signup can slip past the service's username check
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, shared.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, username, password, COALESCE(device_token, ''), created_at FROM users WHERE id = ?`

	return r.getOne(ctx, query, id)
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, password, COALESCE(device_token, ''), created_at FROM users WHERE username = ?`

	return r.getOne(ctx, query, username)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Password, &user.DeviceToken, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) UpdateDeviceToken(ctx context.Context, id string, token string) error {
	query := `UPDATE users SET device_token = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, token, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return shared.ErrorNotFound
	}

	return nil
}
