package photos

import (
	"context"
	"fmt"

	"github.com/smart-mailbox/backend/internal/dbx"
)

// SQLiteRepository implements photo metadata storage for the local variant.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, photo *Photo) error {

	query := `
		INSERT INTO photos (uid, username, filename, url, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		photo.UID, photo.Username, photo.Filename, photo.URL, photo.Status, photo.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, uid string) ([]*Photo, error) {

	query := `
		SELECT id, uid, username, filename, url, status, created_at FROM photos
		WHERE uid = ?
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
