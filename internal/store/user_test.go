package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bssmarket/shop_backend/internal/hash"
)

func newUserStore(t *testing.T) *UserStore {
	t.Helper()
	// MinCost keeps the hashing step cheap in tests.
	return NewUserStore(InitTestDB(t), hash.Bcrypt{Cost: 4})
}

func TestUserCreateHashesPassword(t *testing.T) {
	s := newUserStore(t)
	ctx := context.Background()

	user, err := s.Create(ctx, "a", "a@x.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "secret", user.PasswordHash)
	require.True(t, s.Hasher.Verify(user.PasswordHash, "secret"))
}

func TestUserVerifyCredentials(t *testing.T) {
	s := newUserStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "a", "a@x.com", "secret")
	require.NoError(t, err)

	user, err := s.VerifyCredentials(ctx, "a@x.com", "secret")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)

	_, err = s.VerifyCredentials(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.VerifyCredentials(ctx, "nobody@x.com", "secret")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserSearch(t *testing.T) {
	s := newUserStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "alice", "alice@x.com", "pw")
	require.NoError(t, err)
	_, err = s.Create(ctx, "bob", "bob@y.com", "pw")
	require.NoError(t, err)

	users, err := s.Search(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = s.Search(ctx, "ali", "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "alice", users[0].Username)

	users, err = s.Search(ctx, "ali", "y.com")
	require.NoError(t, err)
	require.Empty(t, users)

	users, err = s.Search(ctx, "zzz", "")
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestUserPartialUpdate(t *testing.T) {
	s := newUserStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "a", "a@x.com", "secret")
	require.NoError(t, err)

	name := "b"
	updated, err := s.Update(ctx, created.ID, UserPatch{Username: &name})
	require.NoError(t, err)
	require.Equal(t, "b", updated.Username)

	got, err := s.FindOne(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "b", got.Username)
	require.Equal(t, "a@x.com", got.Email)
	require.Equal(t, created.PasswordHash, got.PasswordHash)
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	s := newUserStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "a", "a@x.com", "secret")
	require.NoError(t, err)

	pw := "newsecret"
	updated, err := s.Update(ctx, created.ID, UserPatch{Password: &pw})
	require.NoError(t, err)
	require.NotEqual(t, "newsecret", updated.PasswordHash)

	_, err = s.VerifyCredentials(ctx, "a@x.com", "newsecret")
	require.NoError(t, err)
	_, err = s.VerifyCredentials(ctx, "a@x.com", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserUpdateNoFields(t *testing.T) {
	s := newUserStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "a", "a@x.com", "secret")
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, UserPatch{})
	require.NoError(t, err)
	require.Equal(t, created.Username, updated.Username)
	require.Equal(t, created.Email, updated.Email)
	require.Equal(t, created.PasswordHash, updated.PasswordHash)
}

func TestUserUpdateAbsent(t *testing.T) {
	s := newUserStore(t)

	name := "b"
	_, err := s.Update(context.Background(), "no-such-id", UserPatch{Username: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserDelete(t *testing.T) {
	s := newUserStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "a", "a@x.com", "secret")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.FindOne(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
