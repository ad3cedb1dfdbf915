package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogr/internal/domain"
	"blogr/internal/repository"
)

type fakeUserRepo struct {
	nextID int64
	byName map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	if _, exists := f.byName[user.Username]; exists {
		return 0, repository.ErrDuplicateUsername
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.byName[user.Username] = &cp
	return user.ID, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.byName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, user := range f.byName {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo)
	ctx := context.Background()

	user, err := s.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	// the returned user never carries the hash
	assert.Empty(t, user.PasswordHash)

	stored := repo.byName["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestRegister_SaltedHashesDiffer(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	_, err = s.Register(ctx, "bob", "secret")
	require.NoError(t, err)

	// same plaintext, different salts, both verify
	aliceHash := repo.byName["alice"].PasswordHash
	bobHash := repo.byName["bob"].PasswordHash
	assert.NotEqual(t, aliceHash, bobHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(bobHash), []byte("secret")))
}

func TestRegister_Validation(t *testing.T) {
	s := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := s.Register(ctx, "", "secret")
	require.ErrorIs(t, err, ErrUsernameRequired)

	_, err = s.Register(ctx, "   ", "secret")
	require.ErrorIs(t, err, ErrUsernameRequired)

	_, err = s.Register(ctx, "alice", "")
	require.ErrorIs(t, err, ErrPasswordRequired)
}

func TestRegister_Duplicate(t *testing.T) {
	s := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "other")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo)
	ctx := context.Background()

	registered, err := s.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	user, err := s.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = s.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrWrongPassword)

	_, err = s.Authenticate(ctx, "ghost", "anything")
	require.ErrorIs(t, err, ErrUnknownUsername)
}

func TestGetByID_Sanitized(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo)
	ctx := context.Background()

	registered, err := s.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	user, err := s.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = s.GetByID(ctx, 999)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
