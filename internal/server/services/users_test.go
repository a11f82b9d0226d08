package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebalakin/cartsync/internal/common"
	"github.com/ebalakin/cartsync/internal/server/auth"
	"github.com/ebalakin/cartsync/internal/server/config"
)

func newUserService(rm *fakeRM) *UserService {
	cfg := &config.Config{SecretKey: "test-secret", AccessTokenValidityDuration: time.Hour}
	return NewUserService(nil, rm, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	rm := newFakeRM()
	svc := newUserService(rm)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, []byte("s3cret"), user.PasswordHash, "password must not be stored in plain text")

	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	userID, err := auth.GetUserIDFromToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	rm := newFakeRM()
	svc := newUserService(rm)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_UnknownAccount(t *testing.T) {
	rm := newFakeRM()
	svc := newUserService(rm)

	_, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
