// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements comments on posts, one level of threading through
ParentID, and comment likes.

Creating or deleting a comment adjusts the parent post's commentsCount in the
same atomic step. Comments survive the deletion of their post.
*/
package comment

import (
	"time"

	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// Comment is a reply to a post as seen by a particular viewer.
type Comment struct {
	ID         string     `json:"id"`
	PostID     string     `json:"postId"`
	AuthorID   string     `json:"authorId"`
	Author     *auth.User `json:"author"`
	ParentID   string     `json:"parentId,omitempty"`
	Content    string     `json:"content"`
	LikesCount int        `json:"likesCount"`
	IsLiked    bool       `json:"isLiked"`
	Version    int64      `json:"version"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CreateInput holds a new comment.
type CreateInput struct {
	PostID   string `json:"postId"`
	Content  string `json:"content"`
	ParentID string `json:"parentId,omitempty"`
}

const (
	// MaxContentLength matches the post limit.
	MaxContentLength = constants.MaxPostLength

	FieldPostID   = "postId"
	FieldContent  = "content"
	FieldParentID = "parentId"
)
