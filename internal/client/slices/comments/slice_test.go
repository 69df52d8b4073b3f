// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comments_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/client/clienttest"
	"github.com/taibuivan/yomira-social/internal/client/slices/comments"
	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/social/comment"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

type countLog map[string]int

func (log countLog) AdjustComments(postID string, delta int) {
	log[postID] += delta
}

func signedIn(t *testing.T) (*comments.Slice, countLog) {
	t.Helper()

	backend := clienttest.NewBackend(t, auth.Settings{})
	session := backend.LogIn(t, "john@example.com")
	counts := countLog{}
	viewer := func() string { return session.State().User.ID }

	return comments.New(backend.Remote, viewer, counts, clienttest.Discard()), counts
}

func ids(items []*comment.Comment) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

/*
TestReduce_Thread verifies create prepends and delete removes, without
modifying the input.
*/
func TestReduce_Thread(t *testing.T) {
	build := func() comments.State {
		current := comments.Initial()
		current.Entities["1"] = &comment.Comment{ID: "1", PostID: "p", Version: 2}
		current.ByPost["p"] = []string{"1"}
		return current
	}

	current := build()
	created := comments.Reduce(current, comments.Created{Comment: &comment.Comment{ID: "2", PostID: "p"}})
	assert.Equal(t, []string{"2", "1"}, ids(created.ForPost("p")))

	stale := comments.Reduce(created, comments.Updated{Comment: &comment.Comment{ID: "1", PostID: "p", Version: 1, Content: "old"}})
	assert.Empty(t, stale.Entities["1"].Content)

	deleted := comments.Reduce(created, comments.Deleted{ID: "1", PostID: "p"})
	assert.Equal(t, []string{"2"}, ids(deleted.ForPost("p")))

	cleared := comments.Reduce(created, comments.PostCleared{PostID: "p"})
	assert.Empty(t, cleared.ForPost("p"))
	assert.Empty(t, cleared.Entities)

	if diff := cmp.Diff(build(), current); diff != "" {
		t.Errorf("Reduce() modified its input:\n%s", diff)
	}
}

/*
TestSlice_Thread loads, creates, likes, edits and deletes comments.
*/
func TestSlice_Thread(t *testing.T) {
	slice, counts := signedIn(t)
	ctx := context.Background()

	thread, err := slice.GetPostComments(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "2"}, ids(thread))
	assert.True(t, thread[0].IsLiked)

	created, err := slice.CreateComment(ctx, "2", "Agreed!", "2")
	require.NoError(t, err)
	assert.Equal(t, "2", created.ParentID)
	assert.Equal(t, []string{created.ID, "4", "2"}, ids(slice.State().ForPost("2")))
	assert.Equal(t, 1, counts["2"])

	unliked, err := slice.ToggleLikeComment(ctx, "4")
	require.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	assert.Zero(t, unliked.LikesCount)

	edited, err := slice.UpdateComment(ctx, created.ID, "Strongly agreed!")
	require.NoError(t, err)
	assert.Equal(t, "Strongly agreed!", slice.State().Entities[created.ID].Content)
	assert.Greater(t, edited.Version, created.Version)

	_, err = slice.UpdateComment(ctx, "2", "hijack")
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	require.NoError(t, slice.DeleteComment(ctx, created.ID))
	assert.Equal(t, []string{"4", "2"}, ids(slice.State().ForPost("2")))
	assert.Zero(t, counts["2"])

	fetched, err := slice.GetCommentByID(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "3", fetched.PostID)

	slice.ClearCommentsForPost("2")
	assert.Empty(t, slice.State().ForPost("2"))
}

/*
TestSlice_CreateComment_Failures verifies validation and session checks.
*/
func TestSlice_CreateComment_Failures(t *testing.T) {
	slice, counts := signedIn(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		postID   string
		content  string
		parentID string
		code     string
	}{
		{"empty", "1", " ", "", apperr.CodeValidation},
		{"missing post", "404", "hello", "", apperr.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := slice.CreateComment(ctx, tt.postID, tt.content, tt.parentID)
			require.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			assert.False(t, slice.State().IsCreating)
			assert.NotEmpty(t, slice.State().Error)
		})
	}

	// A reply must stay within the parent's post.
	_, err := slice.CreateComment(ctx, "1", "cross-thread", "5")
	assert.Error(t, err)
	assert.Empty(t, counts)

	anonymous := comments.New(nil, state.Anonymous, nil, clienttest.Discard())
	_, err = anonymous.CreateComment(ctx, "1", "hello", "")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotAuthenticated))
}
