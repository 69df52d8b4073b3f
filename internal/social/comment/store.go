// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// CommentRepository defines the persistence contract for comments and comment likes.
type CommentRepository interface {
	/*
		ListByPost returns every comment of postID, newest first.

		Parameters:
		  - context: context.Context
		  - viewerID: string (empty for anonymous)
		  - postID: string

		Returns:
		  - []*Comment: Possibly empty, never nil
		  - error: Storage failures
	*/
	ListByPost(context context.Context, viewerID, postID string) ([]*Comment, error)

	// FindByID retrieves a single comment or apperr.NotFound.
	FindByID(context context.Context, viewerID, id string) (*Comment, error)

	/*
		Create stores comment at the head of store order and increments the
		post's commentsCount. The post must exist, and a ParentID must name a
		comment of the same post.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - *Comment: Stored comment with author embedded
		  - error: apperr.NotFound (post), ValidationError (parent), or storage failures
	*/
	Create(context context.Context, comment *Comment) (*Comment, error)

	// UpdateContent replaces the content, refreshes updatedAt, and bumps the version.
	UpdateContent(context context.Context, viewerID, id, content string) (*Comment, error)

	// Delete removes the comment and its likes and decrements the post's commentsCount.
	Delete(context context.Context, id string) error

	// ToggleLike flips userID's like and adjusts likesCount, clamped at zero.
	ToggleLike(context context.Context, userID, id string) (*Comment, error)
}
