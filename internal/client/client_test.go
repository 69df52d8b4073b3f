// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/client"
	"github.com/taibuivan/yomira-social/internal/client/clienttest"
	"github.com/taibuivan/yomira-social/internal/client/persist"
	"github.com/taibuivan/yomira-social/internal/client/slices/ui"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/config"
	"github.com/taibuivan/yomira-social/internal/users/account"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pointer"
)

func newClient(t *testing.T, backend *clienttest.Backend, storage persist.Store) *client.Client {
	t.Helper()

	cfg := &config.ClientConfig{APIURL: backend.URL + "/api/v1", APITimeout: 5 * time.Second}
	composed := client.New(cfg, storage, clienttest.Discard())
	t.Cleanup(func() { assert.NoError(t, composed.Close()) })
	return composed
}

/*
TestClient_CrossSlice verifies that writes in one slice reach the caches of
the others.
*/
func TestClient_CrossSlice(t *testing.T) {
	backend := clienttest.NewBackend(t, auth.Settings{})
	composed := newClient(t, backend, persist.NewMemory())
	ctx := context.Background()

	_, err := composed.Auth.Login(ctx, "john@example.com", clienttest.SeedPassword)
	require.NoError(t, err)

	post, err := composed.Posts.GetPostByID(ctx, "1")
	require.NoError(t, err)

	_, err = composed.Comments.CreateComment(ctx, "1", "Nice", "")
	require.NoError(t, err)
	assert.Equal(t, post.CommentsCount+1, composed.Posts.State().Entities["1"].CommentsCount)

	profile, err := composed.Users.GetUserProfile(ctx, "2")
	require.NoError(t, err)

	status, err := composed.Follows.ToggleFollow(ctx, "2")
	require.NoError(t, err)
	assert.False(t, status.IsFollowing)
	assert.Equal(t, profile.FollowersCount-1, composed.Users.State().Profile("2").FollowersCount)

	bio := "Updated"
	_, err = composed.Users.UpdateProfile(ctx, account.UpdateProfileInput{Bio: pointer.To(bio)})
	require.NoError(t, err)
	assert.Equal(t, bio, composed.Auth.State().User.Bio)

	require.NoError(t, composed.Auth.Logout(ctx))
	assert.Empty(t, composed.Follows.State().Status)
}

/*
TestClient_Restore reopens persisted state in a fresh client.
*/
func TestClient_Restore(t *testing.T) {
	backend := clienttest.NewBackend(t, auth.Settings{})
	storage := persist.NewMemory()
	ctx := context.Background()

	first := newClient(t, backend, storage)
	_, err := first.Auth.Login(ctx, "sarah@example.com", clienttest.SeedPassword)
	require.NoError(t, err)
	_, err = first.UI.ToggleTheme(ctx)
	require.NoError(t, err)

	second := newClient(t, backend, storage)
	assert.False(t, second.Auth.State().IsAuthenticated())
	assert.True(t, second.Restore(ctx))
	assert.Equal(t, "sarahtech", second.Auth.State().User.Username)
	assert.Equal(t, ui.ThemeDark, second.UI.State().Theme)

	me, err := second.Remote.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", me.ID)
}

/*
TestClient_Notifications verifies that gateway failures and forced logout
reach the ui slice.
*/
func TestClient_Notifications(t *testing.T) {
	backend := clienttest.NewBackend(t, auth.Settings{})
	storage := persist.NewMemory()
	composed := newClient(t, backend, storage)
	ctx := context.Background()

	_, err := composed.Auth.Login(ctx, "mike@example.com", clienttest.SeedPassword)
	require.NoError(t, err)

	_, err = composed.Posts.GetPostByID(ctx, "404")
	require.True(t, apperr.IsNotFound(err))

	notifications := composed.UI.State().Notifications
	require.Len(t, notifications, 1)
	assert.Equal(t, ui.KindError, notifications[0].Type)
	assert.Equal(t, "Post not found", notifications[0].Message)

	// Revoke the refresh token behind the client's back, then force a 401.
	require.NoError(t, composed.Remote.Logout(ctx, composed.Auth.State().RefreshToken))
	require.NoError(t, storage.Set(ctx, persist.KeyAccessToken, "stale"))
	require.True(t, composed.Restore(ctx))

	_, err = composed.Remote.Me(ctx)
	assert.True(t, apperr.HasCode(err, apperr.CodeSessionExpired))
	assert.False(t, composed.Auth.State().IsAuthenticated())
	assert.Empty(t, storage.Snapshot())

	last := composed.UI.State().Notifications
	assert.Equal(t, "Session expired. Please log in again.", last[len(last)-1].Message)
}
