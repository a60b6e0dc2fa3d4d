package users

import (
	"context"

	"github.com/smart-mailbox/backend/internal/dbx"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateDeviceToken(ctx context.Context, id string, token string) error
}

// RepositoryFactory builds a Repository over a plain connection or a
// transaction, letting the service run check-then-insert sequences inside
// dbx.WithTx.
type RepositoryFactory func(db dbx.DBTX) Repository
