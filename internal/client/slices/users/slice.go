// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/users/account"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// API is the part of the remote client the users slice calls.
type API interface {
	UserProfile(context context.Context, userID string) (*account.Profile, error)
	UserByUsername(context context.Context, username string) (*account.Profile, error)
	UserStats(context context.Context, userID string) (*account.Stats, error)
	UpdateProfile(context context.Context, input account.UpdateProfileInput) (*auth.User, error)
	SearchUsers(context context.Context, term string, params pagination.Params) (remote.Page[*auth.User], error)
	RecommendedUsers(context context.Context) ([]*auth.User, error)
	UsernameAvailability(context context.Context, username string) (*account.Availability, error)
	EmailAvailability(context context.Context, email string) (*account.Availability, error)
}

// SessionUser receives the current account after a profile update.
type SessionUser interface {
	UpdateUser(context context.Context, user *auth.User) error
}

// Slice owns the users state.
type Slice struct {
	store   *state.Store[State, Event]
	api     API
	session SessionUser
	logger  *slog.Logger
}

// New returns an empty [Slice]. session may be nil.
func New(api API, session SessionUser, logger *slog.Logger) *Slice {
	return &Slice{
		store:   state.New(Initial(), Reduce),
		api:     api,
		session: session,
		logger:  logger,
	}
}

func (slice *Slice) State() State {
	return slice.store.Snapshot()
}

func (slice *Slice) Subscribe(listener state.Listener[State, Event]) {
	slice.store.Subscribe(listener)
}

func (slice *Slice) fail(err error, fallback string) error {
	slice.store.Dispatch(Failed{Message: state.Message(err, fallback)})
	return err
}

// # Profiles

// GetUserProfile loads a profile with the viewer's relationship flags.
func (slice *Slice) GetUserProfile(context context.Context, userID string) (*account.Profile, error) {
	slice.store.Dispatch(Pending{})

	profile, err := slice.api.UserProfile(context, userID)
	if err != nil {
		return nil, slice.fail(err, messageProfile)
	}

	slice.store.Dispatch(ProfileLoaded{Profile: profile})
	return profile, nil
}

// GetUserByUsername loads a profile by handle.
func (slice *Slice) GetUserByUsername(context context.Context, username string) (*account.Profile, error) {
	slice.store.Dispatch(Pending{})

	profile, err := slice.api.UserByUsername(context, username)
	if err != nil {
		return nil, slice.fail(err, messageProfile)
	}

	slice.store.Dispatch(ProfileLoaded{Profile: profile})
	return profile, nil
}

/*
UpdateProfile patches the current account.

The updated account replaces the cached profile and the session's user.
*/
func (slice *Slice) UpdateProfile(context context.Context, input account.UpdateProfileInput) (*auth.User, error) {
	slice.store.Dispatch(Pending{})

	user, err := slice.api.UpdateProfile(context, input)
	if err != nil {
		return nil, slice.fail(err, messageUpdate)
	}

	slice.store.Dispatch(ProfileUpdated{User: user})

	if slice.session != nil {
		if err := slice.session.UpdateUser(context, user); err != nil {
			slice.logger.Warn("users_session_update_failed", slog.Any("error", err))
		}
	}

	slice.logger.Info("users_profile_updated", slog.String("user_id", user.ID))
	return user, nil
}

// Apply refreshes a cached profile from an account returned elsewhere, such
// as a follow change.
func (slice *Slice) Apply(user *auth.User) {
	if user == nil {
		return
	}
	slice.store.Dispatch(AccountChanged{User: user})
}

// GetUserStats loads aggregate statistics.
func (slice *Slice) GetUserStats(context context.Context, userID string) (*account.Stats, error) {
	slice.store.Dispatch(Pending{})

	stats, err := slice.api.UserStats(context, userID)
	if err != nil {
		return nil, slice.fail(err, messageStats)
	}

	slice.store.Dispatch(StatsLoaded{UserID: userID, Stats: stats})
	return stats, nil
}

// # Discovery

// SearchUsers matches username, names and bio.
func (slice *Slice) SearchUsers(context context.Context, term string, params pagination.Params) (*SearchResults, error) {
	slice.store.Dispatch(Pending{})

	page, err := slice.api.SearchUsers(context, term, params)
	if err != nil {
		return nil, slice.fail(err, messageSearch)
	}

	return slice.store.Dispatch(SearchLoaded{Query: term, Page: page}).Search, nil
}

// GetRecommendedUsers loads suggestions for the viewer.
func (slice *Slice) GetRecommendedUsers(context context.Context) ([]*auth.User, error) {
	slice.store.Dispatch(Pending{})

	users, err := slice.api.RecommendedUsers(context)
	if err != nil {
		return nil, slice.fail(err, messageRecommended)
	}

	slice.store.Dispatch(RecommendedLoaded{Users: users})
	return users, nil
}

// CheckUsernameAvailability does not touch the slice state.
func (slice *Slice) CheckUsernameAvailability(context context.Context, username string) (bool, error) {
	availability, err := slice.api.UsernameAvailability(context, username)
	if err != nil {
		return false, err
	}
	return availability.IsAvailable, nil
}

// CheckEmailAvailability does not touch the slice state.
func (slice *Slice) CheckEmailAvailability(context context.Context, email string) (bool, error) {
	availability, err := slice.api.EmailAvailability(context, email)
	if err != nil {
		return false, err
	}
	return availability.IsAvailable, nil
}

func (slice *Slice) ClearSearchResults() {
	slice.store.Dispatch(SearchCleared{})
}

func (slice *Slice) ClearError() {
	slice.store.Dispatch(ErrorCleared{})
}
