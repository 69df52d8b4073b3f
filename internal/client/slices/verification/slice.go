// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package verification

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/social/verification"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

type API interface {
	VerificationRequirements(context context.Context) (verification.Requirements, error)
	VerificationStatus(context context.Context) (*verification.Request, error)
	VerificationEligibility(context context.Context) (verification.Eligibility, error)
	SubmitVerification(context context.Context) (*verification.Request, error)
	ReviewVerification(context context.Context, userID string, approve bool, reason string) (*verification.Request, error)
	VerifiedUsers(context context.Context, params pagination.Params) (remote.Page[*auth.User], error)
}

// Slice owns the verification state.
type Slice struct {
	store  *state.Store[State, Event]
	api    API
	logger *slog.Logger
}

func New(api API, logger *slog.Logger) *Slice {
	return &Slice{store: state.New(Initial(), Reduce), api: api, logger: logger}
}

func (slice *Slice) State() State {
	return slice.store.Snapshot()
}

func (slice *Slice) Subscribe(listener state.Listener[State, Event]) {
	slice.store.Subscribe(listener)
}

func (slice *Slice) fail(op Op, err error) error {
	slice.store.Dispatch(Failed{Op: op, Message: state.Message(err, defaultMessages[op])})
	return err
}

/*
Submit files a verification request for the viewer.

Returns:
  - *verification.Request: The pending request
  - error: VALIDATION_ERROR with one detail per unmet requirement, or CONFLICT
    when a request is pending or already approved
*/
func (slice *Slice) Submit(context context.Context) (*verification.Request, error) {
	slice.store.Dispatch(Pending{Op: OpSubmit})

	request, err := slice.api.SubmitVerification(context)
	if err != nil {
		return nil, slice.fail(OpSubmit, err)
	}

	slice.store.Dispatch(RequestLoaded{Request: request})
	slice.logger.Info("verification_submitted", slog.String("user_id", request.UserID))
	return request, nil
}

// GetStatus loads the viewer's latest request.
func (slice *Slice) GetStatus(context context.Context) (verification.Status, error) {
	slice.store.Dispatch(Pending{Op: OpStatus})

	request, err := slice.api.VerificationStatus(context)
	if err != nil {
		return "", slice.fail(OpStatus, err)
	}

	slice.store.Dispatch(RequestLoaded{Request: request})
	return slice.State().Status, nil
}

func (slice *Slice) GetRequirements(context context.Context) (verification.Requirements, error) {
	slice.store.Dispatch(Pending{Op: OpRequirements})

	requirements, err := slice.api.VerificationRequirements(context)
	if err != nil {
		return verification.Requirements{}, slice.fail(OpRequirements, err)
	}

	slice.store.Dispatch(RequirementsLoaded{Requirements: requirements})
	return requirements, nil
}

// CheckCanSubmit asks the server whether the viewer may submit now.
func (slice *Slice) CheckCanSubmit(context context.Context) (verification.Eligibility, error) {
	slice.store.Dispatch(Pending{Op: OpEligibility})

	eligibility, err := slice.api.VerificationEligibility(context)
	if err != nil {
		return verification.Eligibility{}, slice.fail(OpEligibility, err)
	}

	slice.store.Dispatch(EligibilityLoaded{Eligibility: eligibility})
	return eligibility, nil
}

func (slice *Slice) GetVerifiedUsers(context context.Context, params pagination.Params) ([]*auth.User, error) {
	slice.store.Dispatch(Pending{Op: OpVerified})

	page, err := slice.api.VerifiedUsers(context, params)
	if err != nil {
		return nil, slice.fail(OpVerified, err)
	}

	slice.store.Dispatch(VerifiedLoaded{Users: page.Items})
	return page.Items, nil
}

// Review approves or rejects userID's pending request. A rejection needs a
// reason. Moderators only.
func (slice *Slice) Review(context context.Context, userID string, approve bool, reason string) (*verification.Request, error) {
	slice.store.Dispatch(Pending{Op: OpReview})

	request, err := slice.api.ReviewVerification(context, userID, approve, reason)
	if err != nil {
		return nil, slice.fail(OpReview, err)
	}

	slice.store.Dispatch(Reviewed{Request: request})
	slice.logger.Info("verification_reviewed",
		slog.String("user_id", userID),
		slog.String("status", string(request.Status)),
	)
	return request, nil
}

// Reset returns the slice to not_submitted without contacting the server.
func (slice *Slice) Reset() {
	slice.store.Dispatch(Reset{})
}

func (slice *Slice) ClearError() {
	slice.store.Dispatch(ErrorCleared{})
}
