package photos

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE photos (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  uid TEXT NOT NULL,
  username TEXT,
  filename TEXT NOT NULL,
  url TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'unknown',
  created_at TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLite_InsertAndListNewestFirst(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	// inserted out of chronological order on purpose
	for _, p := range []*Photo{
		{UID: "u-1", Username: "alice", Filename: "b.jpg", URL: "http://x/b.jpg", Status: "unknown", CreatedAt: base.Add(time.Minute)},
		{UID: "u-1", Username: "alice", Filename: "c.jpg", URL: "http://x/c.jpg", Status: "delivered", CreatedAt: base.Add(2 * time.Minute)},
		{UID: "u-1", Username: "alice", Filename: "a.jpg", URL: "http://x/a.jpg", Status: "unknown", CreatedAt: base},
		{UID: "u-2", Username: "bob", Filename: "z.jpg", URL: "http://x/z.jpg", Status: "unknown", CreatedAt: base.Add(time.Hour)},
	} {
		require.NoError(t, r.Insert(ctx, p))
	}

	list, err := r.ListByOwner(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "c.jpg", list[0].Filename)
	assert.Equal(t, "b.jpg", list[1].Filename)
	assert.Equal(t, "a.jpg", list[2].Filename)

	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt), "list must be ordered newest first")
	}
}

func TestSQLite_ListUnknownOwnerIsEmpty(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	list, err := r.ListByOwner(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLite_InsertFillsRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	p := &Photo{UID: "u-1", Username: "alice", Filename: "a.jpg", URL: "http://x/a.jpg", Status: "unknown", CreatedAt: created}
	require.NoError(t, r.Insert(ctx, p))

	list, err := r.ListByOwner(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.NotZero(t, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "http://x/a.jpg", got.URL)
	assert.Equal(t, "unknown", got.Status)
	assert.True(t, got.CreatedAt.Equal(created))
}
