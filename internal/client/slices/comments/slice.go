// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comments

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/social/comment"
)

// API is the part of the remote client the comments slice calls.
type API interface {
	PostComments(context context.Context, postID string) ([]*comment.Comment, error)
	Comment(context context.Context, commentID string) (*comment.Comment, error)
	CreateComment(context context.Context, input comment.CreateInput) (*comment.Comment, error)
	UpdateComment(context context.Context, commentID, content string) (*comment.Comment, error)
	DeleteComment(context context.Context, commentID string) error
	ToggleCommentLike(context context.Context, commentID string) (*comment.Comment, error)
}

// CountSink is told when a post gains or loses a comment.
type CountSink interface {
	AdjustComments(postID string, delta int)
}

// Slice owns the comments state.
type Slice struct {
	store  *state.Store[State, Event]
	api    API
	viewer state.Viewer
	counts CountSink
	logger *slog.Logger
}

// New returns an empty [Slice]. counts may be nil.
func New(api API, viewer state.Viewer, counts CountSink, logger *slog.Logger) *Slice {
	if viewer == nil {
		viewer = state.Anonymous
	}
	return &Slice{
		store:  state.New(Initial(), Reduce),
		api:    api,
		viewer: viewer,
		counts: counts,
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

func (slice *Slice) adjust(postID string, delta int) {
	if slice.counts != nil && postID != "" {
		slice.counts.AdjustComments(postID, delta)
	}
}

// # Reads

// GetPostComments loads the thread of postID, newest first.
func (slice *Slice) GetPostComments(context context.Context, postID string) ([]*comment.Comment, error) {
	slice.store.Dispatch(Pending{Op: OpList})

	thread, err := slice.api.PostComments(context, postID)
	if err != nil {
		return nil, slice.fail(OpList, err)
	}

	slice.store.Dispatch(Loaded{PostID: postID, Comments: thread})
	return thread, nil
}

func (slice *Slice) GetCommentByID(context context.Context, commentID string) (*comment.Comment, error) {
	slice.store.Dispatch(Pending{Op: OpGet})

	loaded, err := slice.api.Comment(context, commentID)
	if err != nil {
		return nil, slice.fail(OpGet, err)
	}

	return slice.store.Dispatch(Fetched{Comment: loaded}).Entities[loaded.ID], nil
}

// # Writes

/*
CreateComment adds a comment, optionally as a reply to parentID.

Returns:
  - *comment.Comment: The new comment, first in its thread
  - error: NOT_AUTHENTICATED, VALIDATION_ERROR, NOT_FOUND (post or parent)
*/
func (slice *Slice) CreateComment(context context.Context, postID, content, parentID string) (*comment.Comment, error) {
	slice.store.Dispatch(Pending{Op: OpCreate})
	if slice.viewer() == "" {
		return nil, slice.fail(OpCreate, apperr.NotAuthenticated("User not authenticated"))
	}

	created, err := slice.api.CreateComment(context, comment.CreateInput{PostID: postID, Content: content, ParentID: parentID})
	if err != nil {
		return nil, slice.fail(OpCreate, err)
	}

	slice.store.Dispatch(Created{Comment: created})
	slice.adjust(created.PostID, 1)

	slice.logger.Info("comments_created", slog.String("comment_id", created.ID), slog.String("post_id", created.PostID))
	return created, nil
}

func (slice *Slice) UpdateComment(context context.Context, commentID, content string) (*comment.Comment, error) {
	slice.store.Dispatch(Pending{Op: OpUpdate})

	updated, err := slice.api.UpdateComment(context, commentID, content)
	if err != nil {
		return nil, slice.fail(OpUpdate, err)
	}

	return slice.store.Dispatch(Updated{Op: OpUpdate, Comment: updated}).Entities[updated.ID], nil
}

// DeleteComment removes an own comment from the server and its thread.
func (slice *Slice) DeleteComment(context context.Context, commentID string) error {
	slice.store.Dispatch(Pending{Op: OpDelete})

	postID := ""
	if cached, ok := slice.store.Snapshot().Entities[commentID]; ok {
		postID = cached.PostID
	}

	if err := slice.api.DeleteComment(context, commentID); err != nil {
		return slice.fail(OpDelete, err)
	}

	slice.store.Dispatch(Deleted{ID: commentID, PostID: postID})
	slice.adjust(postID, -1)

	slice.logger.Info("comments_deleted", slog.String("comment_id", commentID))
	return nil
}

func (slice *Slice) ToggleLikeComment(context context.Context, commentID string) (*comment.Comment, error) {
	slice.store.Dispatch(Pending{Op: OpLike})

	toggled, err := slice.api.ToggleCommentLike(context, commentID)
	if err != nil {
		return nil, slice.fail(OpLike, err)
	}

	return slice.store.Dispatch(Updated{Op: OpLike, Comment: toggled}).Entities[toggled.ID], nil
}

// ClearCommentsForPost drops the cached thread of postID.
func (slice *Slice) ClearCommentsForPost(postID string) {
	slice.store.Dispatch(PostCleared{PostID: postID})
}

func (slice *Slice) ClearError() {
	slice.store.Dispatch(ErrorCleared{})
}
