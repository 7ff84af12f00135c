package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerease/grocery-shop/internal/hash"
	"github.com/grocerease/grocery-shop/internal/models"
	"github.com/grocerease/grocery-shop/internal/tokens"
)

var testSecret = []byte("test-secret")

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "s3cret", "Alice"))

	var user models.User
	require.NoError(t, r.DB.Where("username = ?", "alice").First(&user).Error)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	res, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.False(t, res.IsAdmin)

	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, testSecret)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "user", claims.Role)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "s3cret"},
		{"empty password", "alice", ""},
		{"both empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Register(ctx, tc.username, tc.password, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "s3cret", "Alice"))

	err := svc.Register(ctx, "alice", "other", "Alice Again")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "s3cret", "Alice"))

	_, err := svc.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Login(ctx, "nobody", "s3cret")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "s3cret", "Alice"))
	require.NoError(t, svc.Register(ctx, "bob", "hunter2", "Bob"))

	var alice models.User
	require.NoError(t, r.DB.Where("username = ?", "alice").First(&alice).Error)

	t.Run("wrong current password", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice.ID, ProfileUpdate{
			Username:        "alice",
			CurrentPassword: "wrong",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("taken username", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice.ID, ProfileUpdate{
			Username:        "bob",
			CurrentPassword: "s3cret",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("new password equals current", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice.ID, ProfileUpdate{
			Username:        "alice",
			CurrentPassword: "s3cret",
			NewPassword:     "s3cret",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rename and change password", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, alice.ID, ProfileUpdate{
			Username:        "alice2",
			CurrentPassword: "s3cret",
			NewPassword:     "n3wpass",
			Name:            "Alice B",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice2", updated.Username)
		assert.Equal(t, "Alice B", updated.Name)
		assert.True(t, hash.CheckPassword(updated.PasswordHash, "n3wpass"))

		_, err = svc.Login(ctx, "alice2", "n3wpass")
		require.NoError(t, err)
	})
}
