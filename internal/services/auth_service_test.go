package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (*AuthService, *fakeUsers, *SessionStore) {
	t.Helper()
	users := newFakeUsers()
	sessions, _ := newTestSessions(t, time.Hour)
	return NewAuthService(users, sessions, logging.Discard()), users, sessions
}

func TestAuth_RegisterLoginLogout(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	ctx := context.Background()

	u, err := auth.Register(ctx, "Budi_01", "rahasia", "")
	require.NoError(t, err)
	assert.Equal(t, "budi_01", u.Username)
	assert.Equal(t, "budi_01", u.Name)
	assert.NotEqual(t, "rahasia", u.PasswordHash)

	token, got, err := auth.Login(ctx, "BUDI_01", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	id, err := auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	me, err := auth.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "budi_01", me.Username)

	require.NoError(t, auth.Logout(ctx, token))
	_, err = auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuth_AuthenticateSlidesExpiry(t *testing.T) {
	users := newFakeUsers()
	sessions, mr := newTestSessions(t, time.Hour)
	auth := NewAuthService(users, sessions, logging.Discard())
	ctx := context.Background()

	_, err := auth.Register(ctx, "budi", "rahasia", "Budi")
	require.NoError(t, err)
	token, _, err := auth.Login(ctx, "budi", "rahasia")
	require.NoError(t, err)

	mr.FastForward(45 * time.Minute)
	_, err = auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL(SessionKeyPrefix+token))

	// active use keeps the session alive past the original expiry
	mr.FastForward(45 * time.Minute)
	_, err = auth.Authenticate(ctx, token)
	require.NoError(t, err)

	mr.FastForward(61 * time.Minute)
	_, err = auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

type failingRefresh struct {
	*SessionStore
}

func (failingRefresh) Refresh(context.Context, string) error {
	return errors.New("redis: connection refused")
}

func TestAuth_AuthenticateIgnoresRefreshFailure(t *testing.T) {
	users := newFakeUsers()
	store, _ := newTestSessions(t, time.Hour)
	auth := NewAuthService(users, failingRefresh{store}, logging.Discard())
	ctx := context.Background()

	token, err := store.Create(ctx, alice)
	require.NoError(t, err)

	id, err := auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice, id)
}

func TestAuth_LoginRejects(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	ctx := context.Background()
	_, err := auth.Register(ctx, "budi", "rahasia", "Budi")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "budi", "salah123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "siapa", "rahasia")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "bu", "rahasia")
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "username", ve.Field)

	_, _, err = auth.Login(ctx, "budi", "123")
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Password minimal 6 karakter", ve.Message)
}

func TestAuth_LoginCorruptHash(t *testing.T) {
	auth, users, _ := newTestAuth(t)
	users.byID[alice] = &models.User{ID: alice, Username: "alice", PasswordHash: "plain"}

	_, _, err := auth.Login(context.Background(), "alice", "rahasia")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_RegisterDuplicate(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "budi", "rahasia", "Budi")
	require.NoError(t, err)
	_, err = auth.Register(ctx, "BUDI", "rahasia", "Budi")
	assert.ErrorIs(t, err, models.ErrUserExists)
}

func TestAuth_StorageErrors(t *testing.T) {
	auth, users, _ := newTestAuth(t)
	users.err = errors.New("connection refused")
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "budi", "rahasia")
	assert.ErrorIs(t, err, models.ErrStorage)
	assert.NotContains(t, err.Error(), "connection refused")

	_, err = auth.Me(ctx, alice)
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestAuth_AuthenticateUnknownToken(t *testing.T) {
	auth, _, _ := newTestAuth(t)

	_, err := auth.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = auth.Authenticate(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = auth.Me(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = auth.Me(context.Background(), bob)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
