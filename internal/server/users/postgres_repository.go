package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/smart-mailbox/backend/internal/dbx"
	"github.com/smart-mailbox/backend/internal/shared"
)

// PostgresRepository implements user storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (id, username, password, created_at)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Password, user.CreatedAt)

	if err != nil {
		// a concurrent signup can slip past the service's username check
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query :=
		`SELECT id, username, password, COALESCE(device_token, ''), created_at FROM users
		 WHERE id = $1
		 `

	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query :=
		`SELECT id, username, password, COALESCE(device_token, ''), created_at FROM users
		 WHERE username = $1
		 `

	return r.getOne(ctx, query, username)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*User, error) {
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

// UpdateDeviceToken overwrites the registered device token. The write is
// idempotent; registering the same token twice is a no-op for the caller.
func (r *PostgresRepository) UpdateDeviceToken(ctx context.Context, id string, token string) error {
	query := `UPDATE users SET device_token = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, token)
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
