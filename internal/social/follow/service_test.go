// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/social/follow"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
	"github.com/taibuivan/yomira-social/pkg/slice"
)

func newService(t *testing.T, db *mockdb.DB) *follow.Service {
	t.Helper()
	return follow.NewService(follow.NewMemoryFollowRepository(db), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seeded(t *testing.T) *mockdb.DB {
	t.Helper()
	db, err := mockdb.NewDefault()
	require.NoError(t, err)
	return db
}

func usernames(users []*auth.User) []string {
	return slice.Map(users, func(user *auth.User) string { return user.Username })
}

/*
TestService_Status covers both directions and the anonymous viewer.
*/
func TestService_Status(t *testing.T) {
	service := newService(t, seeded(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		viewer string
		target string
		want   follow.Status
	}{
		{"mutual", "1", "3", follow.Status{IsFollowing: true, IsFollower: true, IsMutual: true}},
		{"following only", "1", "2", follow.Status{IsFollowing: true}},
		{"follower only", "2", "1", follow.Status{IsFollower: true}},
		{"anonymous", "", "1", follow.Status{}},
		{"self", "1", "1", follow.Status{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := service.Status(ctx, tt.viewer, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}

	_, err := service.Status(ctx, "1", "404")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Toggle verifies edge inversion and counter updates on both accounts.
*/
func TestService_Toggle(t *testing.T) {
	db := seeded(t)
	service := newService(t, db)
	ctx := context.Background()

	_, err := service.Toggle(ctx, "", "2")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotAuthenticated))

	_, err = service.Toggle(ctx, "2", "2")
	assert.True(t, apperr.HasCode(err, apperr.CodeSelfFollow))

	change, err := service.Toggle(ctx, "2", "1")
	require.NoError(t, err)
	assert.Equal(t, follow.Status{IsFollowing: true, IsFollower: true, IsMutual: true}, change.Status)
	assert.Equal(t, 1251, change.User.FollowersCount)

	change, err = service.Toggle(ctx, "2", "1")
	require.NoError(t, err)
	assert.Equal(t, follow.Status{IsFollower: true}, change.Status)
	assert.Equal(t, 1250, change.User.FollowersCount)

	require.NoError(t, db.Read(ctx, func(tables *mockdb.Tables) error {
		assert.Equal(t, 234, tables.UserByID("2").FollowingCount)
		assert.Len(t, tables.Follows, 4)
		return nil
	}))

	_, err = service.Toggle(ctx, "2", "404")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Toggle_Concurrent verifies that concurrent toggles never leave a
duplicate edge or drifted counters.
*/
func TestService_Toggle_Concurrent(t *testing.T) {
	db := seeded(t)
	service := newService(t, db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Toggle(ctx, "3", "2")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	counts, err := service.Counts(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, follow.Counts{Followers: 1, Following: 1}, counts)

	require.NoError(t, db.Read(ctx, func(tables *mockdb.Tables) error {
		assert.Equal(t, 890, tables.UserByID("2").FollowersCount)
		assert.Equal(t, 567, tables.UserByID("3").FollowingCount)
		return nil
	}))
}

/*
TestService_FollowUnfollow covers the explicit variants and their failures.
*/
func TestService_FollowUnfollow(t *testing.T) {
	seed, err := mockdb.ParseSeed([]byte(`
users:
  - { id: "a", username: alice, email: a@example.com, password: pw }
  - { id: "b", username: bob, email: b@example.com, password: pw }
`))
	require.NoError(t, err)
	db, err := mockdb.NewSeeded(seed)
	require.NoError(t, err)

	service := newService(t, db)
	ctx := context.Background()

	change, err := service.Follow(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, change.Status.IsFollowing)
	assert.False(t, change.Status.IsMutual)
	assert.Equal(t, 1, change.User.FollowersCount)

	_, err = service.Follow(ctx, "a", "b")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	change, err = service.Unfollow(ctx, "a", "b")
	require.NoError(t, err)
	assert.Zero(t, change.User.FollowersCount)

	status, err := service.Status(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, follow.Status{}, status)

	_, err = service.Unfollow(ctx, "a", "b")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Lists covers followers, following, and mutual follows.
*/
func TestService_Lists(t *testing.T) {
	service := newService(t, seeded(t))
	ctx := context.Background()

	followers, meta, err := service.Followers(ctx, "3", pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"sarahtech", "johndoe"}, usernames(followers))
	assert.Equal(t, 2, meta.Total)

	following, meta, err := service.Following(ctx, "1", pagination.Params{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"mikedev"}, usernames(following))
	assert.False(t, meta.HasNextPage)

	// 1 follows {2, 3} and 2 follows {3}.
	mutual, err := service.Mutual(ctx, "1", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"mikedev"}, usernames(mutual))

	mutual, err = service.Mutual(ctx, "", "2")
	require.NoError(t, err)
	assert.Empty(t, mutual)

	counts, err := service.Counts(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, follow.Counts{Followers: 1, Following: 2}, counts)

	_, _, err = service.Followers(ctx, "404", pagination.Params{})
	assert.True(t, apperr.IsNotFound(err))
}
