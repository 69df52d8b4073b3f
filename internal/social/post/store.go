// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"

	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// PostRepository defines the persistence contract for posts and post likes.
//
// Every read takes the viewer ID (empty for anonymous) so that IsLiked can be
// filled in.
type PostRepository interface {
	/*
		List returns one page of posts matching filter.

		Parameters:
		  - context: context.Context
		  - viewerID: string
		  - filter: Filter
		  - params: pagination.Params

		Returns:
		  - []*Post: Page of posts with authors embedded
		  - int: Total number of matches
		  - error: Storage failures
	*/
	List(context context.Context, viewerID string, filter Filter, params pagination.Params) ([]*Post, int, error)

	// FindByID retrieves a single post or apperr.NotFound.
	FindByID(context context.Context, viewerID, id string) (*Post, error)

	/*
		Create inserts post at the head of store order and increments the
		author's postsCount in the same atomic step.

		Parameters:
		  - context: context.Context
		  - post: *Post (ID, AuthorID, Content set; timestamps filled in)

		Returns:
		  - *Post: The stored post with author embedded
		  - error: apperr.NotFound (author) or storage failures
	*/
	Create(context context.Context, post *Post) (*Post, error)

	// UpdateContent replaces the content, refreshes updatedAt, and bumps the version.
	UpdateContent(context context.Context, viewerID, id, content string) (*Post, error)

	/*
		Delete removes the post and its likes and decrements the author's
		postsCount. Comments on the post are kept.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id string) error

	/*
		ToggleLike flips userID's like on the post and adjusts likesCount by one,
		clamped at zero, as a single atomic step.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - id: string

		Returns:
		  - *Post: The post after the toggle, as seen by userID
		  - error: apperr.NotFound or storage failures
	*/
	ToggleLike(context context.Context, userID, id string) (*Post, error)
}
