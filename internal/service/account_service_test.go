package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/blog-platform/internal/session"
)

func TestSignupLoginLogout(t *testing.T) {
	database := setupDatabase(t)
	sessions := session.NewMemoryStore(time.Hour)
	svc := NewAccountService(database, sessions)
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	resolved, err := svc.UserFromSession(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	_, _, err = svc.Signup(ctx, "alice", "", "other")
	assert.ErrorIs(t, err, ErrInvalidInput)

	loginToken, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.Logout(ctx, loginToken))
	resolved, err = svc.UserFromSession(ctx, loginToken)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
