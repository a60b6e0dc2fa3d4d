package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smart-mailbox/backend/internal/dbx"
	"github.com/smart-mailbox/backend/internal/shared"
)

type Service struct {
	db    *sql.DB
	repos RepositoryFactory
}

func NewService(db *sql.DB, repos RepositoryFactory) *Service {
	return &Service{db: db, repos: repos}
}

// Signup creates an account with a generated id. The uniqueness check and
// the insert run in one transaction; the UNIQUE constraint still backstops
// concurrent signups that pass the check on weaker isolation levels.
func (s *Service) Signup(ctx context.Context, username, password string) (*User, error) {

	if username == "" || password == "" {
		return nil, shared.ErrorValidation
	}

	user := &User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos(tx)

		_, err := repo.GetByUsername(ctx, username)
		if err == nil {
			return shared.ErrorAlreadyExists
		}
		if !errors.Is(err, shared.ErrorNotFound) {
			return err
		}

		_, err = repo.Create(ctx, user)
		return err
	})

	if err != nil {
		if errors.Is(err, shared.ErrorAlreadyExists) {
			return nil, shared.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login returns the user when the supplied password equals the stored one
// exactly. Unknown username and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {

	user, err := s.repos(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorUnauthorized
		}
		return nil, shared.ErrorInternal
	}

	if user.Password != password {
		return nil, shared.ErrorUnauthorized
	}

	return user, nil
}

// Resolve looks an owner up by generated id first and falls back to the
// username, so endpoints accept either identifier.
func (s *Service) Resolve(ctx context.Context, id string) (*User, error) {

	repo := s.repos(s.db)

	user, err := repo.GetByID(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, shared.ErrorNotFound) {
		return nil, err
	}

	return repo.GetByUsername(ctx, id)
}

// RegisterToken stores the device token for push delivery, overwriting any
// previous value.
func (s *Service) RegisterToken(ctx context.Context, id, token string) error {

	user, err := s.Resolve(ctx, id)
	if err != nil {
		return err
	}

	return s.repos(s.db).UpdateDeviceToken(ctx, user.ID, token)
}
