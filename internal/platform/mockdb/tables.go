// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockdb

import (
	"slices"
	"strings"
	"time"
)

// # Rows

// UserRow is a stored account.
type UserRow struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Bio            string
	Avatar         string
	Role           string
	IsVerified     bool
	FollowersCount int
	FollowingCount int
	PostsCount     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PostRow is a stored post. Version increases on every write.
type PostRow struct {
	ID            string
	AuthorID      string
	Content       string
	LikesCount    int
	CommentsCount int
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CommentRow is a stored comment. ParentID is empty for top-level comments.
type CommentRow struct {
	ID         string
	PostID     string
	AuthorID   string
	ParentID   string
	Content    string
	LikesCount int
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FollowRow is a directed follow edge.
type FollowRow struct {
	ID          string
	FollowerID  string
	FollowingID string
	CreatedAt   time.Time
}

// VerificationRow is the latest verification request of an account.
type VerificationRow struct {
	UserID      string
	Status      string
	SubmittedAt *time.Time
	ReviewedAt  *time.Time
	Reason      string
}

// SessionRow is a refresh-token session keyed by token hash.
type SessionRow struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	IsRevoked bool
	CreatedAt time.Time
}

// LikeKind distinguishes the subject of a like.
type LikeKind string

const (
	LikePost    LikeKind = "post"
	LikeComment LikeKind = "comment"
)

type likeKey struct {
	kind      LikeKind
	subjectID string
	userID    string
}

// # Tables

// Tables is the full data set. Slices keep store order: new posts and
// comments are prepended, new accounts and edges appended.
type Tables struct {
	Users         []*UserRow
	Posts         []*PostRow
	Comments      []*CommentRow
	Follows       []*FollowRow
	Verifications map[string]*VerificationRow
	Sessions      map[string]*SessionRow
	likes         map[likeKey]struct{}
}

func newTables() *Tables {
	return &Tables{
		Verifications: make(map[string]*VerificationRow),
		Sessions:      make(map[string]*SessionRow),
		likes:         make(map[likeKey]struct{}),
	}
}

// ## Users

// UserByID returns the account with the given ID, or nil.
func (tables *Tables) UserByID(id string) *UserRow {
	for _, user := range tables.Users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

// UserByEmail returns the account with the given email (case-insensitive), or nil.
func (tables *Tables) UserByEmail(email string) *UserRow {
	for _, user := range tables.Users {
		if strings.EqualFold(user.Email, email) {
			return user
		}
	}
	return nil
}

// UserByUsername returns the account with the given username (case-insensitive), or nil.
func (tables *Tables) UserByUsername(username string) *UserRow {
	for _, user := range tables.Users {
		if strings.EqualFold(user.Username, username) {
			return user
		}
	}
	return nil
}

// ## Posts

// PostByID returns the post with the given ID, or nil.
func (tables *Tables) PostByID(id string) *PostRow {
	for _, post := range tables.Posts {
		if post.ID == id {
			return post
		}
	}
	return nil
}

// PrependPost inserts post at the head of store order.
func (tables *Tables) PrependPost(post *PostRow) {
	tables.Posts = slices.Insert(tables.Posts, 0, post)
}

// RemovePost deletes a post and its likes. It reports whether a row was removed.
func (tables *Tables) RemovePost(id string) bool {
	index := slices.IndexFunc(tables.Posts, func(post *PostRow) bool { return post.ID == id })
	if index < 0 {
		return false
	}
	tables.Posts = slices.Delete(tables.Posts, index, index+1)
	tables.dropLikes(LikePost, id)
	return true
}

// ## Comments

// CommentByID returns the comment with the given ID, or nil.
func (tables *Tables) CommentByID(id string) *CommentRow {
	for _, comment := range tables.Comments {
		if comment.ID == id {
			return comment
		}
	}
	return nil
}

// PrependComment inserts comment at the head of store order.
func (tables *Tables) PrependComment(comment *CommentRow) {
	tables.Comments = slices.Insert(tables.Comments, 0, comment)
}

// RemoveComment deletes a comment and its likes. It reports whether a row was removed.
func (tables *Tables) RemoveComment(id string) bool {
	index := slices.IndexFunc(tables.Comments, func(comment *CommentRow) bool { return comment.ID == id })
	if index < 0 {
		return false
	}
	tables.Comments = slices.Delete(tables.Comments, index, index+1)
	tables.dropLikes(LikeComment, id)
	return true
}

// ## Follows

// FollowEdge returns the edge followerID -> followingID, or nil.
func (tables *Tables) FollowEdge(followerID, followingID string) *FollowRow {
	for _, edge := range tables.Follows {
		if edge.FollowerID == followerID && edge.FollowingID == followingID {
			return edge
		}
	}
	return nil
}

// RemoveFollow deletes the edge followerID -> followingID. It reports whether
// an edge was removed.
func (tables *Tables) RemoveFollow(followerID, followingID string) bool {
	index := slices.IndexFunc(tables.Follows, func(edge *FollowRow) bool {
		return edge.FollowerID == followerID && edge.FollowingID == followingID
	})
	if index < 0 {
		return false
	}
	tables.Follows = slices.Delete(tables.Follows, index, index+1)
	return true
}

// ## Likes

// IsLiked reports whether userID likes the subject.
func (tables *Tables) IsLiked(kind LikeKind, subjectID, userID string) bool {
	if userID == "" {
		return false
	}
	_, ok := tables.likes[likeKey{kind: kind, subjectID: subjectID, userID: userID}]
	return ok
}

// SetLiked adds or removes userID from the subject's like set.
func (tables *Tables) SetLiked(kind LikeKind, subjectID, userID string, liked bool) {
	key := likeKey{kind: kind, subjectID: subjectID, userID: userID}
	if liked {
		tables.likes[key] = struct{}{}
		return
	}
	delete(tables.likes, key)
}

func (tables *Tables) dropLikes(kind LikeKind, subjectID string) {
	for key := range tables.likes {
		if key.kind == kind && key.subjectID == subjectID {
			delete(tables.likes, key)
		}
	}
}

// # Counters

// Adjust returns value+delta clamped at zero.
func Adjust(value, delta int) int {
	if value+delta < 0 {
		return 0
	}
	return value + delta
}
