// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles public profiles and profile management.

It provides profile lookup with per-viewer relationship flags, profile search,
recommendations, handle availability checks, aggregate statistics, and
partial updates of the caller's own profile.

# Architecture

  - Entities: Profile, Stats, Availability (DTOs over [auth.User]).
  - Domain: This package depends on the auth package for the User entity.
  - Relationship flags are computed from follow edges at read time.
*/
package account

import (
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// # Domain Entities

// Profile is an account as seen by a particular viewer.
type Profile struct {
	auth.User

	// IsFollowing is true when the viewer follows this account.
	IsFollowing bool `json:"isFollowing"`

	// IsFollower is true when this account follows the viewer.
	IsFollower bool `json:"isFollower"`

	// MutualFollows counts the accounts followed by both the viewer and this account.
	MutualFollows int `json:"mutualFollows"`
}

// Relationship holds the viewer-relative flags of a [Profile].
type Relationship struct {
	IsFollowing   bool
	IsFollower    bool
	MutualFollows int
}

// Stats aggregates engagement numbers of one account.
type Stats struct {
	PostsCount       int `json:"postsCount"`
	FollowersCount   int `json:"followersCount"`
	FollowingCount   int `json:"followingCount"`
	LikesReceived    int `json:"likesReceived"`
	CommentsReceived int `json:"commentsReceived"`
}

// Availability is the answer to a username or email availability check.
type Availability struct {
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
}

// UpdateProfileInput defines the mutable subset of user profile fields.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
}

// Empty reports whether the input changes nothing.
func (input UpdateProfileInput) Empty() bool {
	return input.FirstName == nil && input.LastName == nil && input.Bio == nil && input.Avatar == nil
}

// # Constants

const (
	// RecommendedLimit caps the recommendation list.
	RecommendedLimit = 5

	// MaxNameLength applies to first and last names.
	MaxNameLength = 50

	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldBio       = "bio"
	FieldAvatar    = "avatar"
	FieldQuery     = "q"
)
