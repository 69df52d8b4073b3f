// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package verification_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/client/clienttest"
	"github.com/taibuivan/yomira-social/internal/client/remote"
	verificationslice "github.com/taibuivan/yomira-social/internal/client/slices/verification"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/social/verification"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// signedIn returns a slice acting as email, each on its own backend session
// over the shared database.
func signedIn(t *testing.T, backend *clienttest.Backend, email string) *verificationslice.Slice {
	t.Helper()

	backend.LogIn(t, email)
	return verificationslice.New(backend.Remote, clienttest.Discard())
}

/*
TestSlice_Workflow submits as a member and approves as a moderator.
*/
func TestSlice_Workflow(t *testing.T) {
	backend := clienttest.NewBackend(t, auth.Settings{})
	ctx := context.Background()

	member := signedIn(t, backend, "sarah@example.com")

	status, err := member.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, verification.StatusNotSubmitted, status)

	eligibility, err := member.CheckCanSubmit(ctx)
	require.NoError(t, err)
	assert.True(t, eligibility.CanSubmit)
	assert.NotNil(t, member.State().Eligibility)

	request, err := member.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, verification.StatusPending, request.Status)
	assert.Equal(t, verification.StatusPending, member.State().Status)
	assert.Nil(t, member.State().Eligibility)
	assert.False(t, member.State().IsSubmitting)

	_, err = member.Submit(ctx)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.NotEmpty(t, member.State().Error)

	_, err = member.Review(ctx, "2", true, "")
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	// The gateway now carries mike's session.
	moderator := signedIn(t, backend, "mike@example.com")

	reviewed, err := moderator.Review(ctx, "2", true, "")
	require.NoError(t, err)
	assert.Equal(t, verification.StatusApproved, reviewed.Status)
	status, err = moderator.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, verification.StatusApproved, status)

	verified, err := moderator.GetVerifiedUsers(ctx, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, verified, 3)
	assert.Len(t, moderator.State().VerifiedUsers, 3)

	member.Reset()
	assert.Equal(t, verificationslice.Initial(), member.State())
}

/*
TestSlice_Requirements verifies the public thresholds and the status of an
already verified account.
*/
func TestSlice_Requirements(t *testing.T) {
	backend := clienttest.NewBackend(t, auth.Settings{})
	slice := signedIn(t, backend, "john@example.com")
	ctx := context.Background()

	requirements, err := slice.GetRequirements(ctx)
	require.NoError(t, err)
	assert.Equal(t, verification.DefaultRequirements, requirements)

	status, err := slice.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, verification.StatusApproved, status)

	eligibility, err := slice.CheckCanSubmit(ctx)
	require.NoError(t, err)
	assert.False(t, eligibility.CanSubmit)

	slice.ClearError()
	assert.Empty(t, slice.State().Error)
}

/*
TestSlice_Anonymous surfaces the gateway's expired-session error.
*/
func TestSlice_Anonymous(t *testing.T) {
	backend := clienttest.NewBackend(t, auth.Settings{})
	slice := verificationslice.New(remote.New(backend.Gateway), clienttest.Discard())

	_, err := slice.Submit(context.Background())
	assert.True(t, apperr.HasCode(err, apperr.CodeSessionExpired))
	assert.False(t, slice.State().IsSubmitting)
	assert.NotEmpty(t, slice.State().Error)
}
