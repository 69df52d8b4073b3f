// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package follow manages directed follow edges between accounts.

An ordered pair has at most one edge and an account never follows itself.
Every edge write adjusts followingCount on the follower and followersCount on
the target in the same atomic step. Mutuality is derived from the two
directions and never stored.
*/
package follow

import (
	"time"

	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// Edge is a directed follow edge.
type Edge struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"followerId"`
	FollowingID string    `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Status is the relationship between a viewer and a target account.
type Status struct {
	IsFollowing bool `json:"isFollowing"`
	IsFollower  bool `json:"isFollower"`
	IsMutual    bool `json:"isMutual"`
}

// NewStatus derives the mutual flag from both directions.
func NewStatus(isFollowing, isFollower bool) Status {
	return Status{IsFollowing: isFollowing, IsFollower: isFollower, IsMutual: isFollowing && isFollower}
}

// Change is the outcome of a follow write: the new status and the target with
// refreshed counters.
type Change struct {
	Status Status     `json:"status"`
	User   *auth.User `json:"user"`
}

// Counts are follower totals computed from edges.
type Counts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
