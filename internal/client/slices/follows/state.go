// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package follows caches follow relationships as seen by the viewer.
package follows

import (
	"maps"

	"github.com/taibuivan/yomira-social/internal/social/follow"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// State is the follows slice. Every map is keyed by the target user id.
type State struct {
	Followers map[string][]*auth.User  `json:"followers"`
	Following map[string][]*auth.User  `json:"following"`
	Status    map[string]follow.Status `json:"followStatus"`
	Mutual    map[string][]*auth.User  `json:"mutualFollows"`
	Counts    map[string]follow.Counts `json:"counts"`
	IsLoading bool                     `json:"isLoading"`
	Error     string                   `json:"error,omitempty"`
}

func Initial() State {
	return State{
		Followers: map[string][]*auth.User{},
		Following: map[string][]*auth.User{},
		Status:    map[string]follow.Status{},
		Mutual:    map[string][]*auth.User{},
		Counts:    map[string]follow.Counts{},
	}
}

// # Events

type Op string

const (
	OpToggle    Op = "toggle"
	OpFollow    Op = "follow"
	OpUnfollow  Op = "unfollow"
	OpStatus    Op = "status"
	OpFollowers Op = "followers"
	OpFollowing Op = "following"
	OpMutual    Op = "mutual"
	OpCounts    Op = "counts"
)

var defaultMessages = map[Op]string{
	OpToggle:    "Failed to toggle follow",
	OpFollow:    "Failed to follow user",
	OpUnfollow:  "Failed to unfollow user",
	OpStatus:    "Failed to fetch follow status",
	OpFollowers: "Failed to fetch followers",
	OpFollowing: "Failed to fetch following",
	OpMutual:    "Failed to fetch mutual follows",
	OpCounts:    "Failed to fetch follow counts",
}

type Event interface{ followsEvent() }

type (
	Pending struct{ Op Op }

	StatusLoaded struct {
		UserID string
		Status follow.Status
	}

	// Changed applies the result of a follow, unfollow or toggle. The
	// target's cached follower list is dropped since it no longer matches.
	Changed struct {
		UserID string
		Change follow.Change
	}

	// ListLoaded stores a followers, following or mutual list.
	ListLoaded struct {
		Op     Op
		UserID string
		Users  []*auth.User
	}

	CountsLoaded struct {
		UserID string
		Counts follow.Counts
	}

	Failed struct {
		Op      Op
		Message string
	}

	Cleared      struct{}
	ErrorCleared struct{}
)

func (Pending) followsEvent()      {}
func (StatusLoaded) followsEvent() {}
func (Changed) followsEvent()      {}
func (ListLoaded) followsEvent()   {}
func (CountsLoaded) followsEvent() {}
func (Failed) followsEvent()       {}
func (Cleared) followsEvent()      {}
func (ErrorCleared) followsEvent() {}

// # Reducer

// Reduce returns the state after event. It never modifies current.
func Reduce(current State, event Event) State {
	next := current

	switch event := event.(type) {
	case Pending:
		next.IsLoading = true
		next.Error = ""

	case StatusLoaded:
		next.IsLoading = false
		next.Status = with(current.Status, event.UserID, event.Status)

	case Changed:
		next.IsLoading = false
		next.Status = with(current.Status, event.UserID, event.Change.Status)

		next.Followers = maps.Clone(current.Followers)
		delete(next.Followers, event.UserID)
		next.Mutual = maps.Clone(current.Mutual)
		delete(next.Mutual, event.UserID)

		if user := event.Change.User; user != nil {
			if _, cached := current.Counts[event.UserID]; cached {
				next.Counts = with(current.Counts, event.UserID, follow.Counts{
					Followers: user.FollowersCount,
					Following: user.FollowingCount,
				})
			}
		}

	case ListLoaded:
		next.IsLoading = false
		switch event.Op {
		case OpFollowers:
			next.Followers = with(current.Followers, event.UserID, event.Users)
		case OpFollowing:
			next.Following = with(current.Following, event.UserID, event.Users)
		case OpMutual:
			next.Mutual = with(current.Mutual, event.UserID, event.Users)
		}

	case CountsLoaded:
		next.IsLoading = false
		next.Counts = with(current.Counts, event.UserID, event.Counts)

	case Failed:
		next.IsLoading = false
		next.Error = event.Message
		if next.Error == "" {
			next.Error = defaultMessages[event.Op]
		}

	case Cleared:
		next = Initial()

	case ErrorCleared:
		next.Error = ""
	}

	return next
}

// with returns a copy of values with key set.
func with[V any](values map[string]V, key string, value V) map[string]V {
	next := maps.Clone(values)
	if next == nil {
		next = make(map[string]V, 1)
	}
	next[key] = value
	return next
}
