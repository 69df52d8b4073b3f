// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package verification_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/social/verification"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

func newService(t *testing.T, db *mockdb.DB) *verification.Service {
	t.Helper()
	return verification.NewService(
		verification.NewMemoryVerificationRepository(db),
		auth.NewMemoryUserRepository(db),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func seeded(t *testing.T) *mockdb.DB {
	t.Helper()
	db, err := mockdb.NewDefault()
	require.NoError(t, err)
	return db
}

/*
TestRequirements_Unmet verifies each threshold independently.
*/
func TestRequirements_Unmet(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	eligible := auth.User{
		FollowersCount: 100,
		PostsCount:     10,
		Avatar:         "/a.png",
		Bio:            "hi",
		CreatedAt:      now.AddDate(0, 0, -30),
	}

	tests := []struct {
		name   string
		mutate func(user *auth.User)
		want   []string
	}{
		{"all met", func(*auth.User) {}, []string{}},
		{"followers", func(user *auth.User) { user.FollowersCount = 99 }, []string{verification.FieldFollowers}},
		{"posts", func(user *auth.User) { user.PostsCount = 9 }, []string{verification.FieldPosts}},
		{"age", func(user *auth.User) { user.CreatedAt = now.AddDate(0, 0, -29) }, []string{verification.FieldAge}},
		{"avatar and bio", func(user *auth.User) { user.Avatar, user.Bio = "", "" }, []string{verification.FieldAvatar, verification.FieldBio}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := eligible
			tt.mutate(&user)
			assert.Equal(t, tt.want, verification.DefaultRequirements.Unmet(&user, now))
		})
	}
}

/*
TestService_Lifecycle walks not_submitted -> pending -> rejected -> pending -> approved.
*/
func TestService_Lifecycle(t *testing.T) {
	db := seeded(t)
	service := newService(t, db)
	ctx := context.Background()

	status, err := service.Status(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, verification.StatusNotSubmitted, status.Status)

	eligibility, err := service.CanSubmit(ctx, "2")
	require.NoError(t, err)
	assert.True(t, eligibility.CanSubmit)
	assert.Empty(t, eligibility.Unmet)

	submitted, err := service.Submit(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, verification.StatusPending, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	_, err = service.Submit(ctx, "2")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	eligibility, err = service.CanSubmit(ctx, "2")
	require.NoError(t, err)
	assert.False(t, eligibility.CanSubmit)

	_, err = service.Review(ctx, "3", "2", false, " ")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	rejected, err := service.Review(ctx, "3", "2", false, "Blurry document")
	require.NoError(t, err)
	assert.Equal(t, verification.StatusRejected, rejected.Status)
	assert.Equal(t, "Blurry document", rejected.Reason)
	assert.NotNil(t, rejected.ReviewedAt)

	_, err = service.Review(ctx, "3", "2", true, "")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	resubmitted, err := service.Submit(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, verification.StatusPending, resubmitted.Status)
	assert.Empty(t, resubmitted.Reason)

	approved, err := service.Review(ctx, "3", "2", true, "")
	require.NoError(t, err)
	assert.Equal(t, verification.StatusApproved, approved.Status)

	user, err := auth.NewMemoryUserRepository(db).FindByID(ctx, "2")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	_, err = service.Submit(ctx, "2")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestService_AlreadyVerified reports seeded verified accounts as approved.
*/
func TestService_AlreadyVerified(t *testing.T) {
	service := newService(t, seeded(t))
	ctx := context.Background()

	status, err := service.Status(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, verification.StatusApproved, status.Status)

	eligibility, err := service.CanSubmit(ctx, "1")
	require.NoError(t, err)
	assert.False(t, eligibility.CanSubmit)

	_, err = service.Submit(ctx, "1")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = service.Status(ctx, "404")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Submit_RequirementsUnmet returns one detail per failing requirement.
*/
func TestService_Submit_RequirementsUnmet(t *testing.T) {
	seed, err := mockdb.ParseSeed([]byte(`
users:
  - { id: "n", username: newbie, email: n@example.com, password: pw, followersCount: 3, postsCount: 50, createdAt: 2999-01-01T00:00:00Z }
`))
	require.NoError(t, err)
	db, err := mockdb.NewSeeded(seed)
	require.NoError(t, err)

	service := newService(t, db)

	_, err = service.Submit(context.Background(), "n")
	require.True(t, apperr.HasCode(err, apperr.CodeValidation))

	fields := []string{}
	for _, detail := range apperr.As(err).Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{
		verification.FieldFollowers,
		verification.FieldAge,
		verification.FieldAvatar,
		verification.FieldBio,
	}, fields)
}

/*
TestService_VerifiedUsers lists verified accounts with the default page size.
*/
func TestService_VerifiedUsers(t *testing.T) {
	service := newService(t, seeded(t))

	users, meta, err := service.VerifiedUsers(context.Background(), pagination.Params{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "johndoe", users[0].Username)
	assert.Equal(t, "mikedev", users[1].Username)
	assert.Equal(t, verification.VerifiedUsersLimit, meta.Limit)
	assert.False(t, meta.HasNextPage)
}
