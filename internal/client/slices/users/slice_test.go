// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/client/clienttest"
	"github.com/taibuivan/yomira-social/internal/client/slices/users"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/users/account"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
	"github.com/taibuivan/yomira-social/pkg/pointer"
)

type recordingSession struct {
	users []*auth.User
}

func (session *recordingSession) UpdateUser(_ context.Context, user *auth.User) error {
	session.users = append(session.users, user)
	return nil
}

/*
TestReduce_AccountChanged keeps relationship flags and ignores uncached users.
*/
func TestReduce_AccountChanged(t *testing.T) {
	current := users.Initial()
	current.Profiles["2"] = &account.Profile{User: auth.User{ID: "2", FollowersCount: 890}, IsFollowing: true}

	next := users.Reduce(current, users.AccountChanged{User: &auth.User{ID: "2", FollowersCount: 891}})
	assert.Equal(t, 891, next.Profile("2").FollowersCount)
	assert.True(t, next.Profile("2").IsFollowing)
	assert.Equal(t, 890, current.Profile("2").FollowersCount)

	unchanged := users.Reduce(next, users.AccountChanged{User: &auth.User{ID: "9"}})
	if diff := cmp.Diff(next, unchanged); diff != "" {
		t.Errorf("uncached account changed state:\n%s", diff)
	}
}

/*
TestSlice_Profiles verifies relationship flags and the not-found message.
*/
func TestSlice_Profiles(t *testing.T) {
	backend := clienttest.NewBackend(t, auth.Settings{})
	backend.LogIn(t, "john@example.com")
	slice := users.New(backend.Remote, nil, clienttest.Discard())
	ctx := context.Background()

	profile, err := slice.GetUserProfile(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "sarahtech", profile.Username)
	assert.True(t, profile.IsFollowing)
	assert.False(t, profile.IsFollower)

	byName, err := slice.GetUserByUsername(ctx, "mikedev")
	require.NoError(t, err)
	assert.True(t, byName.IsFollowing)
	assert.True(t, byName.IsFollower)
	assert.Len(t, slice.State().Profiles, 2)

	_, err = slice.GetUserProfile(ctx, "404")
	require.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "User not found", slice.State().Error)
	assert.False(t, slice.State().IsLoading)

	slice.ClearError()
	assert.Empty(t, slice.State().Error)
}

/*
TestSlice_UpdateProfile verifies the profile and the session user converge.
*/
func TestSlice_UpdateProfile(t *testing.T) {
	backend := clienttest.NewBackend(t, auth.Settings{})
	backend.LogIn(t, "sarah@example.com")
	session := &recordingSession{}
	slice := users.New(backend.Remote, session, clienttest.Discard())
	ctx := context.Background()

	_, err := slice.GetUserProfile(ctx, "2")
	require.NoError(t, err)

	user, err := slice.UpdateProfile(ctx, account.UpdateProfileInput{Bio: pointer.To("Shipping things")})
	require.NoError(t, err)
	assert.Equal(t, "Shipping things", user.Bio)

	assert.Equal(t, "Shipping things", slice.State().Profile("2").Bio)
	require.Len(t, session.users, 1)
	assert.Equal(t, "2", session.users[0].ID)
}

/*
TestSlice_Discovery verifies search, recommendations and availability.
*/
func TestSlice_Discovery(t *testing.T) {
	backend := clienttest.NewBackend(t, auth.Settings{})
	backend.LogIn(t, "sarah@example.com")
	slice := users.New(backend.Remote, nil, clienttest.Discard())
	ctx := context.Background()

	results, err := slice.SearchUsers(ctx, "SARAH", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "SARAH", results.Query)
	assert.Equal(t, 1, results.Total)
	require.Len(t, results.Users, 1)
	assert.Equal(t, "sarahtech", results.Users[0].Username)

	slice.ClearSearchResults()
	assert.Nil(t, slice.State().Search)

	recommended, err := slice.GetRecommendedUsers(ctx)
	require.NoError(t, err)
	require.Len(t, recommended, 1)
	assert.Equal(t, "johndoe", recommended[0].Username)

	available, err := slice.CheckUsernameAvailability(ctx, "johndoe")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = slice.CheckEmailAvailability(ctx, "fresh@example.com")
	require.NoError(t, err)
	assert.True(t, available)

	stats, err := slice.GetUserStats(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, stats, slice.State().Stats["1"])
}
