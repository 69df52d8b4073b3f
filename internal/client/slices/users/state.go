// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package users caches public profiles, user search and recommendations.
package users

import (
	"maps"

	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/users/account"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// # State

// SearchResults is the last completed user search.
type SearchResults struct {
	Query       string       `json:"query"`
	Users       []*auth.User `json:"users"`
	Total       int          `json:"total"`
	HasNextPage bool         `json:"hasNextPage"`
}

// State is the users slice. Profiles and Stats are keyed by user id.
type State struct {
	Profiles    map[string]*account.Profile `json:"profiles"`
	Stats       map[string]*account.Stats   `json:"stats"`
	Search      *SearchResults              `json:"searchResults"`
	Recommended []*auth.User                `json:"recommendedUsers"`
	IsLoading   bool                        `json:"isLoading"`
	Error       string                      `json:"error,omitempty"`
}

// Initial is the empty state.
func Initial() State {
	return State{
		Profiles:    map[string]*account.Profile{},
		Stats:       map[string]*account.Stats{},
		Recommended: []*auth.User{},
	}
}

// Profile returns the cached profile of userID, or nil.
func (state State) Profile(userID string) *account.Profile {
	return state.Profiles[userID]
}

// # Events

const (
	messageProfile     = "Failed to fetch user profile"
	messageUpdate      = "Failed to update profile"
	messageSearch      = "Search failed"
	messageRecommended = "Failed to fetch recommended users"
	messageStats       = "Failed to fetch user stats"
)

type Event interface{ usersEvent() }

type (
	Pending struct{}

	ProfileLoaded struct{ Profile *account.Profile }

	// ProfileUpdated completes an update of the viewer's own profile.
	ProfileUpdated struct{ User *auth.User }

	// AccountChanged refreshes the account part of a cached profile, keeping
	// its relationship flags.
	AccountChanged struct{ User *auth.User }

	StatsLoaded struct {
		UserID string
		Stats  *account.Stats
	}

	SearchLoaded struct {
		Query string
		Page  remote.Page[*auth.User]
	}

	RecommendedLoaded struct{ Users []*auth.User }

	Failed struct{ Message string }

	SearchCleared struct{}

	ErrorCleared struct{}
)

func (Pending) usersEvent()           {}
func (ProfileLoaded) usersEvent()     {}
func (ProfileUpdated) usersEvent()    {}
func (AccountChanged) usersEvent()    {}
func (StatsLoaded) usersEvent()       {}
func (SearchLoaded) usersEvent()      {}
func (RecommendedLoaded) usersEvent() {}
func (Failed) usersEvent()            {}
func (SearchCleared) usersEvent()     {}
func (ErrorCleared) usersEvent()      {}

// # Reducer

// Reduce returns the state after event. Maps are copied before writing.
func Reduce(current State, event Event) State {
	next := current

	switch event := event.(type) {
	case Pending:
		next.IsLoading = true
		next.Error = ""

	case ProfileLoaded:
		next.IsLoading = false
		next.Profiles = maps.Clone(current.Profiles)
		next.Profiles[event.Profile.ID] = event.Profile

	case ProfileUpdated:
		next.IsLoading = false
		next.Profiles = withAccount(current.Profiles, event.User)

	case AccountChanged:
		next.Profiles = withAccount(current.Profiles, event.User)

	case StatsLoaded:
		next.IsLoading = false
		next.Stats = maps.Clone(current.Stats)
		next.Stats[event.UserID] = event.Stats

	case SearchLoaded:
		next.IsLoading = false
		next.Search = &SearchResults{
			Query:       event.Query,
			Users:       event.Page.Items,
			Total:       event.Page.Meta.Total,
			HasNextPage: event.Page.Meta.HasNextPage,
		}

	case RecommendedLoaded:
		next.IsLoading = false
		next.Recommended = event.Users

	case Failed:
		next.IsLoading = false
		next.Error = event.Message

	case SearchCleared:
		next.Search = nil

	case ErrorCleared:
		next.Error = ""
	}

	return next
}

// withAccount replaces the account part of a cached profile. Uncached users
// are ignored.
func withAccount(profiles map[string]*account.Profile, user *auth.User) map[string]*account.Profile {
	cached, ok := profiles[user.ID]
	if !ok {
		return profiles
	}

	updated := *cached
	updated.User = *user

	next := maps.Clone(profiles)
	next[user.ID] = &updated
	return next
}
