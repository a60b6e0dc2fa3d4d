package photos

import (
	"context"

	"github.com/smart-mailbox/backend/internal/dbx"
)

type Repository interface {
	// Insert appends one upload record.
	Insert(ctx context.Context, photo *Photo) error

	// ListByOwner returns the owner's uploads newest first. An owner with
	// no uploads yields an empty result, not an error.
	ListByOwner(ctx context.Context, uid string) ([]*Photo, error)
}

// RepositoryFactory builds a Repository over a plain connection or a
// transaction.
type RepositoryFactory func(db dbx.DBTX) Repository
