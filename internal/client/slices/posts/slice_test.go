// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/client/clienttest"
	"github.com/taibuivan/yomira-social/internal/client/slices/posts"
	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

func signedIn(t *testing.T, email string) *posts.Slice {
	t.Helper()

	backend := clienttest.NewBackend(t, auth.Settings{})
	session := backend.LogIn(t, email)
	viewer := func() string { return session.State().User.ID }

	return posts.New(backend.Remote, viewer, clienttest.Discard())
}

/*
TestSlice_FeedScenario loads two feed pages and likes a post.
*/
func TestSlice_FeedScenario(t *testing.T) {
	slice := signedIn(t, "john@example.com")
	ctx := context.Background()

	page, err := slice.GetFeed(ctx, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(page))
	assert.True(t, page[1].IsLiked)

	feed := slice.State().Feed
	assert.True(t, feed.HasNextPage)
	require.NotNil(t, feed.NextCursor)
	assert.Equal(t, "2", *feed.NextCursor)
	assert.False(t, slice.State().IsLoading)

	_, err = slice.GetFeed(ctx, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, slice.State().Feed.IDs)

	_, err = slice.GetExplore(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "6", "2", "5", "1", "4"}, slice.State().Explore.IDs)
	assert.False(t, slice.State().Explore.HasNextPage)
	assert.Nil(t, slice.State().Explore.NextCursor)

	liked, err := slice.ToggleLike(ctx, "1")
	require.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, 43, liked.LikesCount)

	// Feed and explore resolve to the same entity.
	current := slice.State()
	assert.Equal(t, 43, current.FeedPosts()[0].LikesCount)
	assert.Equal(t, 43, current.ExplorePosts()[4].LikesCount)

	unliked, err := slice.ToggleLike(ctx, "1")
	require.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	assert.Equal(t, 42, unliked.LikesCount)
}

/*
TestSlice_CreateAndDelete verifies creation, validation and deletion.
*/
func TestSlice_CreateAndDelete(t *testing.T) {
	slice := signedIn(t, "sarah@example.com")
	ctx := context.Background()

	_, err := slice.GetFeed(ctx, pagination.Params{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too long", strings.Repeat("é", 281)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := slice.CreatePost(ctx, tt.content)
			require.True(t, apperr.HasCode(err, apperr.CodeValidation))
			assert.False(t, slice.State().IsCreating)
			assert.NotEmpty(t, slice.State().Error)
		})
	}

	created, err := slice.CreatePost(ctx, strings.Repeat("é", 280))
	require.NoError(t, err)
	assert.Zero(t, created.LikesCount)
	assert.Zero(t, created.CommentsCount)
	assert.Equal(t, created.ID, slice.State().Feed.IDs[0])
	assert.Empty(t, slice.State().Error)

	updated, err := slice.UpdatePost(ctx, created.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", slice.State().FeedPosts()[0].Content)
	assert.Greater(t, updated.Version, created.Version)

	require.NoError(t, slice.DeletePost(ctx, created.ID))
	assert.NotContains(t, slice.State().Feed.IDs, created.ID)
	assert.NotContains(t, slice.State().Entities, created.ID)

	_, err = slice.GetPostByID(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))

	err = slice.DeletePost(ctx, "1")
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	assert.Contains(t, slice.State().Feed.IDs, "1")
}

/*
TestSlice_CreatePost_Anonymous fails before any request is sent.
*/
func TestSlice_CreatePost_Anonymous(t *testing.T) {
	slice := posts.New(nil, state.Anonymous, clienttest.Discard())

	_, err := slice.CreatePost(context.Background(), "hello")
	require.True(t, apperr.HasCode(err, apperr.CodeNotAuthenticated))
	assert.Equal(t, "User not authenticated", slice.State().Error)
}

/*
TestSlice_SearchAndCurrent verifies search totals and the current post.
*/
func TestSlice_SearchAndCurrent(t *testing.T) {
	slice := signedIn(t, "mike@example.com")
	ctx := context.Background()

	results, err := slice.SearchPosts(ctx, "SARAH", pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "SARAH", results.Query)
	assert.Equal(t, 2, results.Total)
	assert.Len(t, results.IDs, 1)
	assert.True(t, results.HasNextPage)

	slice.ClearSearchResults()
	assert.Nil(t, slice.State().SearchPosts())

	loaded, err := slice.GetPostByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "3", slice.State().Current().ID)
	assert.Equal(t, loaded, slice.State().Current())

	stats, err := slice.GetPostStats(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 89, stats.LikesCount)

	slice.ClearCurrentPost()
	assert.Nil(t, slice.State().Current())

	mine, err := slice.GetUserPosts(ctx, "3", pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "6"}, ids(mine))
	assert.Equal(t, []string{"3", "6"}, slice.State().UserPosts["3"].IDs)

	_, err = slice.GetPostByID(ctx, "404")
	require.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Post not found", slice.State().Error)
	slice.ClearError()
	assert.Empty(t, slice.State().Error)
}
