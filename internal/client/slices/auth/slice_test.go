// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/client/clienttest"
	"github.com/taibuivan/yomira-social/internal/client/persist"
	"github.com/taibuivan/yomira-social/internal/client/remote"
	sessionslice "github.com/taibuivan/yomira-social/internal/client/slices/auth"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

func newSlice(t *testing.T, settings auth.Settings) (*sessionslice.Slice, *persist.Memory, *clienttest.Backend) {
	t.Helper()

	backend := clienttest.NewBackend(t, settings)
	storage := persist.NewMemory()
	slice := sessionslice.New(backend.Remote, storage, clienttest.Discard())
	backend.Gateway.Bind(slice, nil)

	return slice, storage, backend
}

/*
TestReduce verifies the lifecycle transitions without touching the input.
*/
func TestReduce(t *testing.T) {
	user := &auth.User{ID: "1", Username: "johndoe"}
	signedIn := sessionslice.State{User: user, AccessToken: "a", RefreshToken: "r", Status: sessionslice.StatusAuthenticated}

	tests := []struct {
		name    string
		current sessionslice.State
		event   sessionslice.Event
		want    sessionslice.State
	}{
		{
			name:    "login pending",
			current: sessionslice.Initial(),
			event:   sessionslice.Pending{Op: sessionslice.OpLogin},
			want:    sessionslice.State{Status: sessionslice.StatusAuthenticating, IsLoading: true},
		},
		{
			name:    "login rejected",
			current: sessionslice.State{Status: sessionslice.StatusAuthenticating, IsLoading: true},
			event:   sessionslice.Failed{Op: sessionslice.OpLogin},
			want:    sessionslice.State{Status: sessionslice.StatusAnonymous, Error: "Login failed"},
		},
		{
			name:    "signed in",
			current: sessionslice.State{Status: sessionslice.StatusAuthenticating, IsLoading: true},
			event:   sessionslice.SignedIn{Session: auth.LoginSession{User: user, AccessToken: "a", RefreshToken: "r"}},
			want:    signedIn,
		},
		{
			name:    "refreshed keeps refresh token and user",
			current: signedIn,
			event:   sessionslice.Refreshed{AccessToken: "b"},
			want:    sessionslice.State{User: user, AccessToken: "b", RefreshToken: "r", Status: sessionslice.StatusAuthenticated},
		},
		{
			name:    "refresh failure ends session",
			current: signedIn,
			event:   sessionslice.Failed{Op: sessionslice.OpRefresh, Message: "Invalid refresh token"},
			want:    sessionslice.State{Status: sessionslice.StatusAnonymous, Error: "Invalid refresh token"},
		},
		{
			name:    "password failure keeps session",
			current: signedIn,
			event:   sessionslice.Failed{Op: sessionslice.OpChangePassword, Message: "Current password is incorrect"},
			want:    sessionslice.State{User: user, AccessToken: "a", RefreshToken: "r", Status: sessionslice.StatusAuthenticated, Error: "Current password is incorrect"},
		},
		{
			name:    "user update for another account is ignored",
			current: signedIn,
			event:   sessionslice.UserUpdated{User: &auth.User{ID: "2"}},
			want:    signedIn,
		},
		{
			name:    "signed out",
			current: signedIn,
			event:   sessionslice.SignedOut{},
			want:    sessionslice.Initial(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.current
			got := sessionslice.Reduce(tt.current, tt.event)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(before, tt.current); diff != "" {
				t.Errorf("Reduce() modified its input:\n%s", diff)
			}
		})
	}
}

/*
TestSlice_Login verifies a successful login is applied and persisted.
*/
func TestSlice_Login(t *testing.T) {
	slice, storage, _ := newSlice(t, auth.Settings{})
	ctx := context.Background()

	user, err := slice.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "johndoe", user.Username)

	state := slice.State()
	assert.Equal(t, sessionslice.StatusAuthenticated, state.Status)
	assert.True(t, state.IsAuthenticated())
	assert.False(t, state.IsLoading)
	assert.NotEmpty(t, state.AccessToken)

	persisted := storage.Snapshot()
	assert.Equal(t, state.AccessToken, persisted[persist.KeyAccessToken])
	assert.Equal(t, state.RefreshToken, persisted[persist.KeyRefreshToken])
	assert.Contains(t, persisted[persist.KeyUser], `"username":"johndoe"`)
}

/*
TestSlice_Login_InvalidCredentials verifies the slice stays anonymous.
*/
func TestSlice_Login_InvalidCredentials(t *testing.T) {
	slice, storage, _ := newSlice(t, auth.Settings{})

	_, err := slice.Login(context.Background(), "john@example.com", "wrong")
	require.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))

	state := slice.State()
	assert.Equal(t, sessionslice.StatusAnonymous, state.Status)
	assert.Equal(t, "Invalid email or password", state.Error)
	assert.Empty(t, storage.Snapshot())
}

/*
TestSlice_Register verifies duplicate detection and counters of a new account.
*/
func TestSlice_Register(t *testing.T) {
	slice, _, _ := newSlice(t, auth.Settings{})
	ctx := context.Background()

	_, err := slice.Register(ctx, remote.Registration{Username: "johndoe", Email: "new@example.com", Password: "password123"})
	require.True(t, apperr.HasCode(err, apperr.CodeDuplicateAccount))

	user, err := slice.Register(ctx, remote.Registration{Username: "newbie", Email: "newbie@example.com", Password: "password123", FirstName: "New"})
	require.NoError(t, err)
	assert.Zero(t, user.FollowersCount)
	assert.Zero(t, user.PostsCount)
	assert.Equal(t, sessionslice.StatusAuthenticated, slice.Status())
}

/*
TestSlice_Refresh_NoToken verifies nothing changes without a refresh token.
*/
func TestSlice_Refresh_NoToken(t *testing.T) {
	slice, _, _ := newSlice(t, auth.Settings{})
	before := slice.State()

	err := slice.Refresh(context.Background())
	require.True(t, apperr.HasCode(err, apperr.CodeNoRefreshToken))
	assert.Equal(t, before, slice.State())
}

/*
TestSlice_TransparentRefresh verifies an expired access token is renewed by
the gateway and the original call succeeds.
*/
func TestSlice_TransparentRefresh(t *testing.T) {
	slice, storage, backend := newSlice(t, auth.Settings{AccessTokenTTL: time.Millisecond})
	ctx := context.Background()

	_, err := slice.Login(ctx, "sarah@example.com", "password123")
	require.NoError(t, err)
	expired := slice.AccessToken()

	time.Sleep(1100 * time.Millisecond)

	me, err := backend.Remote.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sarahtech", me.Username)

	assert.NotEqual(t, expired, slice.AccessToken())
	assert.Equal(t, slice.AccessToken(), storage.Snapshot()[persist.KeyAccessToken])
	assert.Equal(t, sessionslice.StatusAuthenticated, slice.Status())
}

/*
TestSlice_RevokedRefreshEndsSession verifies the gateway logs out after a
failed refresh.
*/
func TestSlice_RevokedRefreshEndsSession(t *testing.T) {
	slice, storage, backend := newSlice(t, auth.Settings{AccessTokenTTL: time.Millisecond})
	ctx := context.Background()

	_, err := slice.Login(ctx, "sarah@example.com", "password123")
	require.NoError(t, err)

	// Revoke the refresh token server-side but keep it in the slice.
	require.NoError(t, backend.Remote.Logout(ctx, slice.State().RefreshToken))
	time.Sleep(1100 * time.Millisecond)

	_, err = backend.Remote.Me(ctx)
	require.True(t, apperr.HasCode(err, apperr.CodeSessionExpired))

	assert.Equal(t, sessionslice.StatusAnonymous, slice.Status())
	assert.Empty(t, storage.Snapshot())
}

/*
TestSlice_ExpiredAccessToken verifies the credential calls still work while
the held access token is expired.
*/
func TestSlice_ExpiredAccessToken(t *testing.T) {
	ctx := context.Background()

	expire := func(t *testing.T) (*sessionslice.Slice, *clienttest.Backend) {
		t.Helper()
		slice, _, backend := newSlice(t, auth.Settings{AccessTokenTTL: time.Millisecond})
		_, err := slice.Login(ctx, "sarah@example.com", "password123")
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)
		return slice, backend
	}

	t.Run("refresh", func(t *testing.T) {
		slice, _ := expire(t)
		expired := slice.AccessToken()

		require.NoError(t, slice.Refresh(ctx))
		assert.NotEqual(t, expired, slice.AccessToken())
		assert.Equal(t, sessionslice.StatusAuthenticated, slice.Status())
	})

	t.Run("logout revokes", func(t *testing.T) {
		slice, backend := expire(t)
		refreshToken := slice.State().RefreshToken

		require.NoError(t, slice.Logout(ctx))

		_, err := backend.Remote.Refresh(ctx, refreshToken)
		assert.True(t, apperr.HasCode(err, apperr.CodeSessionExpired), "got %v", err)
	})

	t.Run("login again", func(t *testing.T) {
		slice, _ := expire(t)

		user, err := slice.Login(ctx, "mike@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "mikedev", user.Username)
	})
}

/*
TestSlice_RestoreSession verifies persisted sessions are picked up and corrupt
ones ignored.
*/
func TestSlice_RestoreSession(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		storage := persist.NewMemory()
		require.NoError(t, storage.Set(ctx, persist.KeyAccessToken, "a"))
		require.NoError(t, storage.Set(ctx, persist.KeyRefreshToken, "r"))
		require.NoError(t, persist.SetJSON(ctx, storage, persist.KeyUser, auth.User{ID: "1", Username: "johndoe"}))

		slice := sessionslice.New(nil, storage, clienttest.Discard())
		require.True(t, slice.RestoreSession(ctx))
		assert.Equal(t, "johndoe", slice.State().User.Username)
		assert.True(t, slice.CanRefresh())
	})

	t.Run("corrupt user", func(t *testing.T) {
		storage := persist.NewMemory()
		require.NoError(t, storage.Set(ctx, persist.KeyAccessToken, "a"))
		require.NoError(t, storage.Set(ctx, persist.KeyUser, "{"))

		slice := sessionslice.New(nil, storage, clienttest.Discard())
		assert.False(t, slice.RestoreSession(ctx))
		assert.Equal(t, sessionslice.StatusAnonymous, slice.Status())
	})

	t.Run("empty", func(t *testing.T) {
		slice := sessionslice.New(nil, persist.NewMemory(), clienttest.Discard())
		assert.False(t, slice.RestoreSession(ctx))
	})
}

/*
TestSlice_LogoutAndPassword verifies logout is idempotent and password checks.
*/
func TestSlice_LogoutAndPassword(t *testing.T) {
	slice, storage, _ := newSlice(t, auth.Settings{})
	ctx := context.Background()

	_, err := slice.Login(ctx, "mike@example.com", "password123")
	require.NoError(t, err)

	err = slice.ChangePassword(ctx, "nope", "password456")
	require.True(t, apperr.HasCode(err, apperr.CodeWrongPassword))
	assert.Equal(t, "Current password is incorrect", slice.State().Error)
	assert.True(t, slice.State().IsAuthenticated())

	require.NoError(t, slice.ChangePassword(ctx, "password123", "password456"))
	assert.Empty(t, slice.State().Error)

	require.NoError(t, slice.Logout(ctx))
	require.NoError(t, slice.Logout(ctx))
	assert.Equal(t, sessionslice.Initial(), slice.State())
	assert.Empty(t, storage.Snapshot())

	_, err = slice.Login(ctx, "mike@example.com", "password456")
	assert.NoError(t, err)
}
