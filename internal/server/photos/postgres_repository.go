package photos

import (
	"context"
	"fmt"

	"github.com/smart-mailbox/backend/internal/dbx"
)

// PostgresRepository implements photo metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, photo *Photo) error {

	query := `
		INSERT INTO photos (uid, username, filename, url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		photo.UID, photo.Username, photo.Filename, photo.URL, photo.Status, photo.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, uid string) ([]*Photo, error) {

	query := `
		SELECT id, uid, username, filename, url, status, created_at FROM photos
		WHERE uid = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Photo
	for rows.Next() {
		photo := &Photo{}
		err := rows.Scan(&photo.ID, &photo.UID, &photo.Username,
			&photo.Filename, &photo.URL, &photo.Status, &photo.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
