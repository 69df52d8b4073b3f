// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/social/post"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// API is the part of the remote client the posts slice calls.
type API interface {
	Feed(context context.Context, params pagination.Params) (remote.Page[*post.Post], error)
	Explore(context context.Context, params pagination.Params) (remote.Page[*post.Post], error)
	UserPosts(context context.Context, userID string, params pagination.Params) (remote.Page[*post.Post], error)
	SearchPosts(context context.Context, term string, params pagination.Params) (remote.Page[*post.Post], error)
	Post(context context.Context, postID string) (*post.Post, error)
	PostStats(context context.Context, postID string) (*post.Stats, error)
	CreatePost(context context.Context, content string) (*post.Post, error)
	UpdatePost(context context.Context, postID, content string) (*post.Post, error)
	DeletePost(context context.Context, postID string) error
	TogglePostLike(context context.Context, postID string) (*post.Post, error)
}

// Slice owns the posts state.
type Slice struct {
	store  *state.Store[State, Event]
	api    API
	viewer state.Viewer
	logger *slog.Logger
}

// New returns an empty [Slice].
func New(api API, viewer state.Viewer, logger *slog.Logger) *Slice {
	if viewer == nil {
		viewer = state.Anonymous
	}
	return &Slice{
		store:  state.New(Initial(), Reduce),
		api:    api,
		viewer: viewer,
		logger: logger,
	}
}

func (slice *Slice) State() State {
	return slice.store.Snapshot()
}

func (slice *Slice) Subscribe(listener state.Listener[State, Event]) {
	slice.store.Subscribe(listener)
}

func (slice *Slice) fail(op Op, err error) error {
	slice.store.Dispatch(Failed{Op: op, Message: state.Message(err, defaultMessages[op])})
	return err
}

func (slice *Slice) requireSession(op Op) error {
	if slice.viewer() != "" {
		return nil
	}
	return slice.fail(op, apperr.NotAuthenticated("User not authenticated"))
}

// # Listings

func (slice *Slice) load(op Op, userID, query string, fetch func() (remote.Page[*post.Post], error)) ([]*post.Post, error) {
	slice.store.Dispatch(Pending{Op: op})

	page, err := fetch()
	if err != nil {
		return nil, slice.fail(op, err)
	}

	slice.store.Dispatch(PageLoaded{Op: op, UserID: userID, Query: query, Page: page})
	return page.Items, nil
}

/*
GetFeed loads one page of the feed, newest first.

Page 1 replaces the cached feed; later pages extend it. The resulting
[State.Feed] carries hasNextPage and nextCursor.
*/
func (slice *Slice) GetFeed(context context.Context, params pagination.Params) ([]*post.Post, error) {
	return slice.load(OpFeed, "", "", func() (remote.Page[*post.Post], error) {
		return slice.api.Feed(context, params)
	})
}

// GetExplore loads one page of the most liked posts.
func (slice *Slice) GetExplore(context context.Context, params pagination.Params) ([]*post.Post, error) {
	return slice.load(OpExplore, "", "", func() (remote.Page[*post.Post], error) {
		return slice.api.Explore(context, params)
	})
}

func (slice *Slice) GetUserPosts(context context.Context, userID string, params pagination.Params) ([]*post.Post, error) {
	return slice.load(OpUserPosts, userID, "", func() (remote.Page[*post.Post], error) {
		return slice.api.UserPosts(context, userID, params)
	})
}

// SearchPosts matches content and author names case-insensitively.
func (slice *Slice) SearchPosts(context context.Context, term string, params pagination.Params) (*SearchView, error) {
	if _, err := slice.load(OpSearch, "", term, func() (remote.Page[*post.Post], error) {
		return slice.api.SearchPosts(context, term, params)
	}); err != nil {
		return nil, err
	}
	return slice.store.Snapshot().Search, nil
}

// # Single Posts

// GetPostByID loads a post and makes it the current post.
func (slice *Slice) GetPostByID(context context.Context, postID string) (*post.Post, error) {
	slice.store.Dispatch(Pending{Op: OpGet})

	loaded, err := slice.api.Post(context, postID)
	if err != nil {
		return nil, slice.fail(OpGet, err)
	}

	return slice.store.Dispatch(PostLoaded{Post: loaded, Current: true}).Current(), nil
}

// GetPostStats does not change the cache.
func (slice *Slice) GetPostStats(context context.Context, postID string) (*post.Stats, error) {
	stats, err := slice.api.PostStats(context, postID)
	if err != nil {
		return nil, slice.fail(OpStats, err)
	}
	return stats, nil
}

/*
CreatePost publishes content and puts it at the top of the feed.

Returns:
  - *post.Post: Counters at zero
  - error: NOT_AUTHENTICATED, VALIDATION_ERROR (empty or over 280 code points)
*/
func (slice *Slice) CreatePost(context context.Context, content string) (*post.Post, error) {
	slice.store.Dispatch(Pending{Op: OpCreate})
	if err := slice.requireSession(OpCreate); err != nil {
		return nil, err
	}

	created, err := slice.api.CreatePost(context, content)
	if err != nil {
		return nil, slice.fail(OpCreate, err)
	}

	slice.store.Dispatch(Created{Post: created})
	slice.logger.Info("posts_created", slog.String("post_id", created.ID))
	return created, nil
}

// UpdatePost replaces the content of an own post in every view.
func (slice *Slice) UpdatePost(context context.Context, postID, content string) (*post.Post, error) {
	slice.store.Dispatch(Pending{Op: OpUpdate})

	updated, err := slice.api.UpdatePost(context, postID, content)
	if err != nil {
		return nil, slice.fail(OpUpdate, err)
	}

	return slice.applyUpdate(OpUpdate, updated), nil
}

// ToggleLike flips the viewer's like. The server copy is authoritative.
func (slice *Slice) ToggleLike(context context.Context, postID string) (*post.Post, error) {
	slice.store.Dispatch(Pending{Op: OpLike})

	toggled, err := slice.api.TogglePostLike(context, postID)
	if err != nil {
		return nil, slice.fail(OpLike, err)
	}

	return slice.applyUpdate(OpLike, toggled), nil
}

// applyUpdate returns the cached post after the upsert, which is the
// incoming copy unless a newer one arrived first.
func (slice *Slice) applyUpdate(op Op, incoming *post.Post) *post.Post {
	next := slice.store.Dispatch(Updated{Op: op, Post: incoming})
	return next.Entities[incoming.ID]
}

// DeletePost removes an own post from the server and from every view.
func (slice *Slice) DeletePost(context context.Context, postID string) error {
	slice.store.Dispatch(Pending{Op: OpDelete})

	if err := slice.api.DeletePost(context, postID); err != nil {
		return slice.fail(OpDelete, err)
	}

	slice.store.Dispatch(Deleted{ID: postID})
	slice.logger.Info("posts_deleted", slog.String("post_id", postID))
	return nil
}

// AdjustComments applies a comment count change made by the comments slice.
func (slice *Slice) AdjustComments(postID string, delta int) {
	slice.store.Dispatch(CommentsCounted{PostID: postID, Delta: delta})
}

func (slice *Slice) ClearError()         { slice.store.Dispatch(ErrorCleared{}) }
func (slice *Slice) ClearSearchResults() { slice.store.Dispatch(SearchCleared{}) }
func (slice *Slice) ClearCurrentPost()   { slice.store.Dispatch(CurrentCleared{}) }
