// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/client/slices/posts"
	"github.com/taibuivan/yomira-social/internal/social/post"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// cached builds a state with posts a, b and c in every view, fresh each call.
func cached() posts.State {
	state := posts.Initial()
	state.Entities = map[string]*post.Post{
		"a": {ID: "a", AuthorID: "1", Content: "a", Version: 3, CommentsCount: 1},
		"b": {ID: "b", AuthorID: "2", Content: "b", Version: 1},
		"c": {ID: "c", AuthorID: "1", Content: "c", Version: 1},
	}
	state.Feed = posts.View{IDs: []string{"a", "b", "c"}, Page: 1, Total: 3}
	state.Explore = posts.View{IDs: []string{"c", "a", "b"}, Page: 1, Total: 3}
	state.UserPosts = map[string]posts.View{"1": {IDs: []string{"a", "c"}, Page: 1, Total: 2}}
	state.Search = &posts.SearchView{Query: "x", View: posts.View{IDs: []string{"a"}, Page: 1, Total: 1}}
	state.CurrentID = "a"
	return state
}

func ids(items []*post.Post) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

/*
TestReduce_DoesNotModifyInput applies every event kind to a state and checks
the input is unchanged.
*/
func TestReduce_DoesNotModifyInput(t *testing.T) {
	events := []posts.Event{
		posts.Pending{Op: posts.OpFeed},
		posts.PageLoaded{Op: posts.OpFeed, Page: remote.Page[*post.Post]{Items: []*post.Post{{ID: "d"}}, Meta: pagination.Meta{Page: 2}}},
		posts.PageLoaded{Op: posts.OpUserPosts, UserID: "1", Page: remote.Page[*post.Post]{Items: []*post.Post{{ID: "a", Version: 9}}}},
		posts.PostLoaded{Post: &post.Post{ID: "b", Version: 2}, Current: true},
		posts.Created{Post: &post.Post{ID: "e", AuthorID: "1"}},
		posts.Updated{Post: &post.Post{ID: "c", Version: 2, Content: "edited"}},
		posts.Deleted{ID: "a"},
		posts.CommentsCounted{PostID: "a", Delta: 1},
		posts.Failed{Op: posts.OpCreate},
		posts.SearchCleared{},
	}

	for _, event := range events {
		current := cached()
		posts.Reduce(current, event)
		if diff := cmp.Diff(cached(), current); diff != "" {
			t.Errorf("Reduce(%T) modified its input:\n%s", event, diff)
		}
	}
}

/*
TestReduce_VersionGuard ignores copies older than the cached one.
*/
func TestReduce_VersionGuard(t *testing.T) {
	next := posts.Reduce(cached(), posts.Updated{Post: &post.Post{ID: "a", Content: "stale", Version: 2}})
	assert.Equal(t, "a", next.Entities["a"].Content)
	assert.Equal(t, int64(3), next.Entities["a"].Version)

	next = posts.Reduce(next, posts.Updated{Post: &post.Post{ID: "a", Content: "newer", Version: 4}})
	assert.Equal(t, "newer", next.Entities["a"].Content)

	// Every view sees the same entity.
	assert.Equal(t, "newer", next.FeedPosts()[0].Content)
	assert.Equal(t, "newer", next.UserPostsOf("1")[0].Content)
	assert.Equal(t, "newer", next.Current().Content)
}

/*
TestReduce_Deleted removes the post from the store and every view.
*/
func TestReduce_Deleted(t *testing.T) {
	next := posts.Reduce(cached(), posts.Deleted{ID: "a"})

	assert.NotContains(t, next.Entities, "a")
	assert.Equal(t, []string{"b", "c"}, next.Feed.IDs)
	assert.Equal(t, []string{"c", "b"}, next.Explore.IDs)
	assert.Equal(t, []string{"c"}, next.UserPosts["1"].IDs)
	assert.Empty(t, next.Search.IDs)
	assert.Zero(t, next.Search.Total)
	assert.Nil(t, next.Current())
	assert.Equal(t, 2, next.Feed.Total)
}

/*
TestReduce_Created prepends to the feed and to a cached author view.
*/
func TestReduce_Created(t *testing.T) {
	next := posts.Reduce(cached(), posts.Created{Post: &post.Post{ID: "n", AuthorID: "1"}})

	assert.Equal(t, []string{"n", "a", "b", "c"}, next.Feed.IDs)
	assert.Equal(t, []string{"n", "a", "c"}, next.UserPosts["1"].IDs)
	assert.Equal(t, []string{"c", "a", "b"}, next.Explore.IDs)
	assert.NotContains(t, next.UserPosts, "2")
}

/*
TestReduce_PageLoaded replaces on page 1 and appends afterwards.
*/
func TestReduce_PageLoaded(t *testing.T) {
	cursor := "4"
	second := remote.Page[*post.Post]{
		Items: []*post.Post{{ID: "c"}, {ID: "d"}},
		Meta:  pagination.Meta{Page: 2, Limit: 2, Total: 6, HasNextPage: true, NextCursor: &cursor},
	}

	next := posts.Reduce(cached(), posts.PageLoaded{Op: posts.OpFeed, Page: second})
	assert.Equal(t, []string{"a", "b", "c", "d"}, next.Feed.IDs)
	assert.True(t, next.Feed.HasNextPage)
	assert.Equal(t, "4", *next.Feed.NextCursor)

	first := remote.Page[*post.Post]{Items: []*post.Post{{ID: "d"}}, Meta: pagination.Meta{Page: 1, Limit: 1, Total: 6}}
	next = posts.Reduce(next, posts.PageLoaded{Op: posts.OpFeed, Page: first})
	assert.Equal(t, []string{"d"}, next.Feed.IDs)
	assert.Equal(t, []string{"d"}, ids(next.FeedPosts()))
}

/*
TestReduce_CommentsCounted clamps at zero.
*/
func TestReduce_CommentsCounted(t *testing.T) {
	next := posts.Reduce(cached(), posts.CommentsCounted{PostID: "a", Delta: -5})
	assert.Zero(t, next.Entities["a"].CommentsCount)

	next = posts.Reduce(next, posts.CommentsCounted{PostID: "a", Delta: 2})
	assert.Equal(t, 2, next.Entities["a"].CommentsCount)
}
