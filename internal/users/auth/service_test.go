// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

func newService(t *testing.T) *auth.Service {
	t.Helper()

	db, err := mockdb.NewDefault()
	require.NoError(t, err)

	tokens, err := sec.NewEphemeralTokenService("test")
	require.NoError(t, err)

	return auth.NewService(
		auth.NewMemoryUserRepository(db),
		auth.NewMemorySessionRepository(db),
		tokens,
		auth.Settings{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

/*
TestService_Login covers credential checks against the seeded accounts.
*/
func TestService_Login(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		login    string
		password string
		wantCode string
	}{
		{"email", "john@example.com", "password123", ""},
		{"email case-insensitive", "JOHN@example.com", "password123", ""},
		{"username fallback", "johndoe", "password123", ""},
		{"wrong password", "john@example.com", "nope", apperr.CodeInvalidCredentials},
		{"unknown account", "ghost@example.com", "password123", apperr.CodeInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Login(ctx, tt.login, tt.password)
			if tt.wantCode != "" {
				assert.True(t, apperr.HasCode(err, tt.wantCode), "got %v", err)
				assert.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, session.AccessToken)
			assert.NotEmpty(t, session.RefreshToken)
			assert.Equal(t, "1", session.User.ID)
		})
	}
}

/*
TestService_Register verifies account creation and duplicate detection.
*/
func TestService_Register(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	session, err := service.Register(ctx, auth.RegisterInput{
		Username:  "newbie",
		Email:     "newbie@example.com",
		Password:  "longenough",
		FirstName: "New",
	})
	require.NoError(t, err)
	assert.Equal(t, "newbie", session.User.Username)
	assert.Zero(t, session.User.FollowersCount)
	assert.Zero(t, session.User.PostsCount)
	assert.Equal(t, sec.RoleMember, session.User.Role)

	// The new account can sign in right away.
	_, err = service.Login(ctx, "newbie@example.com", "longenough")
	require.NoError(t, err)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterInput{Username: "JohnDoe", Email: "x@example.com", Password: "longenough"})
		assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateAccount))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterInput{Username: "other", Email: "john@example.com", Password: "longenough"})
		assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateAccount))
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterInput{Username: "a", Email: "bad", Password: "short"})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperr.CodeValidation, appErr.Code)
		assert.Len(t, appErr.Details, 3)
	})
}

/*
TestService_Refresh verifies that refresh returns a new access token and keeps
the refresh token usable, and that revoked tokens are rejected.
*/
func TestService_Refresh(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	_, err := service.Refresh(ctx, "")
	assert.True(t, apperr.HasCode(err, apperr.CodeNoRefreshToken))

	_, err = service.Refresh(ctx, "not-a-session")
	assert.True(t, apperr.HasCode(err, apperr.CodeSessionExpired))

	session, err := service.Login(ctx, "sarah@example.com", "password123")
	require.NoError(t, err)

	accessToken, err := service.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	// Not rotated: the same refresh token still works.
	_, err = service.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, session.RefreshToken))
	require.NoError(t, service.Logout(ctx, session.RefreshToken), "logout is idempotent")

	_, err = service.Refresh(ctx, session.RefreshToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeSessionExpired))
}

/*
TestService_ChangePassword verifies the current password check.
*/
func TestService_ChangePassword(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	err := service.ChangePassword(ctx, "2", "wrong-password", "brandnewpass")
	assert.True(t, apperr.HasCode(err, apperr.CodeWrongPassword))

	err = service.ChangePassword(ctx, "2", "password123", "short")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	require.NoError(t, service.ChangePassword(ctx, "2", "password123", "brandnewpass"))

	_, err = service.Login(ctx, "sarah@example.com", "password123")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))

	_, err = service.Login(ctx, "sarah@example.com", "brandnewpass")
	assert.NoError(t, err)
}

/*
TestSession_Active checks revocation and expiry.
*/
func TestSession_Active(t *testing.T) {
	now := time.Now()

	assert.True(t, (&auth.Session{ExpiresAt: now.Add(time.Minute)}).Active(now))
	assert.False(t, (&auth.Session{ExpiresAt: now.Add(-time.Minute)}).Active(now))
	assert.False(t, (&auth.Session{ExpiresAt: now.Add(time.Minute), IsRevoked: true}).Active(now))
}

/*
TestUser_DisplayName checks the name fallbacks.
*/
func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "John Doe", (&auth.User{Username: "johndoe", FirstName: "John", LastName: "Doe"}).DisplayName())
	assert.Equal(t, "John", (&auth.User{Username: "johndoe", FirstName: "John"}).DisplayName())
	assert.Equal(t, "johndoe", (&auth.User{Username: "johndoe"}).DisplayName())
}
