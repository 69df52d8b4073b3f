// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follows_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/client/clienttest"
	"github.com/taibuivan/yomira-social/internal/client/slices/follows"
	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/social/follow"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

type applied []*auth.User

func (sink *applied) Apply(user *auth.User) {
	*sink = append(*sink, user)
}

func signedIn(t *testing.T, email string) (*follows.Slice, *applied) {
	t.Helper()

	backend := clienttest.NewBackend(t, auth.Settings{})
	session := backend.LogIn(t, email)
	sink := &applied{}
	viewer := func() string { return session.State().User.ID }

	return follows.New(backend.Remote, viewer, sink, clienttest.Discard()), sink
}

func usernames(users []*auth.User) []string {
	out := make([]string, 0, len(users))
	for _, user := range users {
		out = append(out, user.Username)
	}
	return out
}

/*
TestReduce_Changed verifies a write updates status and counters and drops the
target's stale follower list.
*/
func TestReduce_Changed(t *testing.T) {
	build := func() follows.State {
		current := follows.Initial()
		current.Followers["2"] = []*auth.User{{ID: "1"}}
		current.Counts["2"] = follow.Counts{Followers: 1}
		return current
	}

	current := build()
	next := follows.Reduce(current, follows.Changed{
		UserID: "2",
		Change: follow.Change{
			Status: follow.Status{},
			User:   &auth.User{ID: "2", FollowersCount: 0, FollowingCount: 1},
		},
	})

	assert.Equal(t, follow.Status{}, next.Status["2"])
	assert.Equal(t, follow.Counts{Following: 1}, next.Counts["2"])
	assert.NotContains(t, next.Followers, "2")

	uncached := follows.Reduce(next, follows.Changed{UserID: "3", Change: follow.Change{User: &auth.User{ID: "3"}}})
	assert.NotContains(t, uncached.Counts, "3")

	if diff := cmp.Diff(build(), current); diff != "" {
		t.Errorf("Reduce() modified its input:\n%s", diff)
	}
}

/*
TestSlice_Status verifies relationship lookups for the seeded viewer.
*/
func TestSlice_Status(t *testing.T) {
	slice, _ := signedIn(t, "john@example.com")
	ctx := context.Background()

	tests := []struct {
		name   string
		target string
		want   follow.Status
	}{
		{"mutual", "3", follow.Status{IsFollowing: true, IsFollower: true, IsMutual: true}},
		{"following only", "2", follow.Status{IsFollowing: true}},
		{"self", "1", follow.Status{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := slice.GetFollowStatus(ctx, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.want, slice.State().Status[tt.target])
		})
	}

	_, err := slice.GetFollowStatus(ctx, "404")
	assert.True(t, apperr.IsNotFound(err))
	assert.NotEmpty(t, slice.State().Error)
}

/*
TestSlice_Toggle unfollows and refollows, forwarding the refreshed target.
*/
func TestSlice_Toggle(t *testing.T) {
	slice, sink := signedIn(t, "john@example.com")
	ctx := context.Background()

	status, err := slice.ToggleFollow(ctx, "2")
	require.NoError(t, err)
	assert.False(t, status.IsFollowing)

	status, err = slice.ToggleFollow(ctx, "2")
	require.NoError(t, err)
	assert.True(t, status.IsFollowing)

	require.Len(t, *sink, 2)
	assert.Equal(t, (*sink)[0].FollowersCount+1, (*sink)[1].FollowersCount)
	assert.Equal(t, "sarahtech", (*sink)[1].Username)

	_, err = slice.ToggleFollow(ctx, "1")
	assert.True(t, apperr.HasCode(err, apperr.CodeSelfFollow))
	assert.NotEmpty(t, slice.State().Error)

	slice.ClearError()
	assert.Empty(t, slice.State().Error)
}

/*
TestSlice_FollowUnfollow verifies explicit writes and their conflicts.
*/
func TestSlice_FollowUnfollow(t *testing.T) {
	slice, _ := signedIn(t, "sarah@example.com")
	ctx := context.Background()

	_, err := slice.Follow(ctx, "3")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	status, err := slice.Follow(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, follow.Status{IsFollowing: true, IsFollower: true, IsMutual: true}, status)

	status, err = slice.Unfollow(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, follow.Status{IsFollower: true}, status)

	_, err = slice.Unfollow(ctx, "1")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestSlice_Bulk skips failures and reports the ids that succeeded.
*/
func TestSlice_Bulk(t *testing.T) {
	slice, _ := signedIn(t, "sarah@example.com")
	ctx := context.Background()

	// Sarah already follows 3; 404 does not exist.
	assert.Equal(t, []string{"1"}, slice.BulkFollow(ctx, []string{"3", "1", "404"}))
	assert.Equal(t, []string{"1", "3"}, slice.BulkUnfollow(ctx, []string{"1", "3"}))

	for _, target := range []string{"1", "3"} {
		status, err := slice.GetFollowStatus(ctx, target)
		require.NoError(t, err)
		assert.False(t, status.IsFollowing, target)
	}
}

/*
TestSlice_Lists loads followers, following, mutual follows and counts.
*/
func TestSlice_Lists(t *testing.T) {
	slice, _ := signedIn(t, "john@example.com")
	ctx := context.Background()

	followers, err := slice.GetFollowers(ctx, "3", pagination.Params{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"johndoe", "sarahtech"}, usernames(followers))

	following, err := slice.GetFollowing(ctx, "1", pagination.Params{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sarahtech", "mikedev"}, usernames(following))

	mutual, err := slice.GetMutualFollows(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"mikedev"}, usernames(mutual))

	counts, err := slice.GetFollowCounts(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, follow.Counts{Followers: 1, Following: 1}, counts)

	current := slice.State()
	assert.Len(t, current.Followers["3"], 2)
	assert.Len(t, current.Following["1"], 2)
	assert.Len(t, current.Mutual["2"], 1)
	assert.Equal(t, counts, current.Counts["2"])

	slice.ClearFollowData()
	assert.Equal(t, follows.Initial(), slice.State())
}

/*
TestSlice_Anonymous verifies that writes need a session and reads do not hit
the network.
*/
func TestSlice_Anonymous(t *testing.T) {
	slice := follows.New(nil, state.Anonymous, nil, clienttest.Discard())
	ctx := context.Background()

	status, err := slice.GetFollowStatus(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, follow.Status{}, status)

	_, err = slice.ToggleFollow(ctx, "2")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotAuthenticated))
	assert.Equal(t, "User not authenticated", slice.State().Error)
}
