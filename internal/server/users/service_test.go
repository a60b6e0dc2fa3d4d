package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/smart-mailbox/backend/internal/dbx"
	"github.com/smart-mailbox/backend/internal/shared"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeRepo struct {
	byID       map[string]*User
	byUsername map[string]*User

	createErr error
	getErr    error
	updateErr error

	created []*User
	tokens  map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:       map[string]*User{},
		byUsername: map[string]*User{},
		tokens:     map[string]string{},
	}
}

func (f *fakeRepo) add(u *User) {
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
}

func (f *fakeRepo) Create(ctx context.Context, u *User) (*User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	f.add(u)
	return u, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, shared.ErrorNotFound
}

func (f *fakeRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, shared.ErrorNotFound
}

func (f *fakeRepo) UpdateDeviceToken(ctx context.Context, id string, token string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[id]; !ok {
		return shared.ErrorNotFound
	}
	f.tokens[id] = token
	return nil
}

func newServiceWithFake(t *testing.T, repo *fakeRepo) (*Service, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	svc := NewService(db, func(dbx.DBTX) Repository { return repo })
	return svc, mock, db
}

// --- tests ---

func TestSignup_Success(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, db := newServiceWithFake(t, repo)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	user, err := svc.Signup(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if user.Username != "alice" || user.Password != "pw1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if _, err := uuid.Parse(user.ID); err != nil {
		t.Fatalf("expected generated uuid id, got %q", user.ID)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created user, got %d", len(repo.created))
	}
}

func TestSignup_Duplicate(t *testing.T) {
	repo := newFakeRepo()
	repo.add(&User{ID: "u-1", Username: "alice", Password: "pw1"})
	svc, mock, db := newServiceWithFake(t, repo)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	// password value must not matter for the conflict
	_, err := svc.Signup(context.Background(), "alice", "pw2")
	if !errors.Is(err, shared.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no created users, got %d", len(repo.created))
	}
}

func TestSignup_RacingDuplicateInsert(t *testing.T) {
	// the username check passes but the insert hits the UNIQUE constraint
	repo := newFakeRepo()
	repo.createErr = shared.ErrorAlreadyExists
	svc, mock, db := newServiceWithFake(t, repo)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Signup(context.Background(), "alice", "pw1")
	if !errors.Is(err, shared.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestSignup_MissingFields(t *testing.T) {
	repo := newFakeRepo()
	svc, _, db := newServiceWithFake(t, repo)
	defer db.Close()

	for _, pair := range [][2]string{{"", "pw"}, {"alice", ""}, {"", ""}} {
		_, err := svc.Signup(context.Background(), pair[0], pair[1])
		if !errors.Is(err, shared.ErrorValidation) {
			t.Fatalf("expected ErrorValidation for %q/%q, got %v", pair[0], pair[1], err)
		}
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeRepo()
	repo.add(&User{ID: "u-1", Username: "alice", Password: "pw1"})
	svc, _, db := newServiceWithFake(t, repo)
	defer db.Close()

	user, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.Username != "alice" || user.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeRepo()
	repo.add(&User{ID: "u-1", Username: "alice", Password: "pw1"})
	svc, _, db := newServiceWithFake(t, repo)
	defer db.Close()

	// comparison is exact and case-sensitive
	for _, pw := range []string{"wrong", "PW1", "pw1 ", ""} {
		_, err := svc.Login(context.Background(), "alice", pw)
		if !errors.Is(err, shared.ErrorUnauthorized) {
			t.Fatalf("expected ErrorUnauthorized for password %q, got %v", pw, err)
		}
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := newFakeRepo()
	svc, _, db := newServiceWithFake(t, repo)
	defer db.Close()

	_, err := svc.Login(context.Background(), "nobody", "pw")
	if !errors.Is(err, shared.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
}

func TestResolve_ByIDAndUsername(t *testing.T) {
	repo := newFakeRepo()
	repo.add(&User{ID: "u-1", Username: "alice", Password: "pw1"})
	svc, _, db := newServiceWithFake(t, repo)
	defer db.Close()

	for _, id := range []string{"u-1", "alice"} {
		user, err := svc.Resolve(context.Background(), id)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", id, err)
		}
		if user.ID != "u-1" {
			t.Fatalf("Resolve(%q): unexpected user %+v", id, user)
		}
	}
}

func TestResolve_NotFound(t *testing.T) {
	repo := newFakeRepo()
	svc, _, db := newServiceWithFake(t, repo)
	defer db.Close()

	_, err := svc.Resolve(context.Background(), "ghost")
	if !errors.Is(err, shared.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestRegisterToken_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.add(&User{ID: "u-1", Username: "alice", Password: "pw1"})
	svc, _, db := newServiceWithFake(t, repo)
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := svc.RegisterToken(context.Background(), "u-1", "tok-1"); err != nil {
			t.Fatalf("RegisterToken attempt %d error: %v", i+1, err)
		}
	}
	if repo.tokens["u-1"] != "tok-1" {
		t.Fatalf("expected stored token tok-1, got %q", repo.tokens["u-1"])
	}
}

func TestRegisterToken_AcceptsUsername(t *testing.T) {
	repo := newFakeRepo()
	repo.add(&User{ID: "u-1", Username: "alice", Password: "pw1"})
	svc, _, db := newServiceWithFake(t, repo)
	defer db.Close()

	if err := svc.RegisterToken(context.Background(), "alice", "tok-2"); err != nil {
		t.Fatalf("RegisterToken error: %v", err)
	}
	if repo.tokens["u-1"] != "tok-2" {
		t.Fatalf("expected token stored under resolved id, got %v", repo.tokens)
	}
}

func TestRegisterToken_UnknownUser(t *testing.T) {
	repo := newFakeRepo()
	svc, _, db := newServiceWithFake(t, repo)
	defer db.Close()

	err := svc.RegisterToken(context.Background(), "ghost", "tok")
	if !errors.Is(err, shared.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
