// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post implements short text posts, their likes, and the feed,
explore, per-author, and search listings.

# Ordering

  - Feed and per-author lists: newest first by createdAt; ties keep store
    order (newest insert first).
  - Explore: most liked first; ties keep feed order.
  - Search: store order.

# Counters

likesCount and commentsCount are denormalized on the post row and never drop
below zero. Every write increments [Post.Version].
*/
package post

import (
	"time"

	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// # Domain Entities

// Post is a short text entry as seen by a particular viewer.
type Post struct {
	ID            string     `json:"id"`
	AuthorID      string     `json:"authorId"`
	Author        *auth.User `json:"author"`
	Content       string     `json:"content"`
	LikesCount    int        `json:"likesCount"`
	CommentsCount int        `json:"commentsCount"`
	IsLiked       bool       `json:"isLiked"`
	Version       int64      `json:"version"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Stats is the engagement summary of one post.
type Stats struct {
	LikesCount    int `json:"likesCount"`
	CommentsCount int `json:"commentsCount"`
	SharesCount   int `json:"sharesCount"`
}

// # Listing Modes

// Ordering selects the sort applied to a listing.
type Ordering int

const (
	// ByRecency sorts newest first.
	ByRecency Ordering = iota

	// ByLikes sorts most liked first.
	ByLikes

	// InStoreOrder keeps store order (newest insert first). Search uses it.
	InStoreOrder
)

// Filter narrows a listing. Zero values mean "no constraint".
type Filter struct {
	AuthorID string
	Query    string
	Ordering Ordering
}

// # Field Identifiers

const (
	FieldContent = "content"
	FieldQuery   = "q"
)
