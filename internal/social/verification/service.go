// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package verification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

var unmetMessages = map[string]string{
	FieldFollowers: "Not enough followers",
	FieldPosts:     "Not enough posts",
	FieldAge:       "Account is too new",
	FieldAvatar:    "A profile picture is required",
	FieldBio:       "A bio is required",
}

// Service implements the verification use cases.
type Service struct {
	verificationRepository VerificationRepository
	accounts               AccountReader
	requirements           Requirements
	logger                 *slog.Logger
	now                    func() time.Time
}

// NewService constructs a verification [Service] applying [DefaultRequirements].
func NewService(verificationRepo VerificationRepository, accounts AccountReader, logger *slog.Logger) *Service {
	return &Service{
		verificationRepository: verificationRepo,
		accounts:               accounts,
		requirements:           DefaultRequirements,
		logger:                 logger,
		now:                    time.Now,
	}
}

// Requirements returns the thresholds in force.
func (service *Service) Requirements() Requirements {
	return service.requirements
}

/*
Status returns the latest request of userID.

Description: Accounts without a stored request are reported as approved when
already verified and not_submitted otherwise.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Request
  - error: NotFound (account) or storage failures
*/
func (service *Service) Status(context context.Context, userID string) (*Request, error) {
	user, err := service.accounts.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return service.statusOf(context, user)
}

func (service *Service) statusOf(context context.Context, user *auth.User) (*Request, error) {
	request, err := service.verificationRepository.FindByUser(context, user.ID)
	switch {
	case err == nil:
		return request, nil
	case !apperr.IsNotFound(err):
		return nil, fmt.Errorf("verification_service_status_failed: %w", err)
	case user.IsVerified:
		return &Request{UserID: user.ID, Status: StatusApproved}, nil
	default:
		return &Request{UserID: user.ID, Status: StatusNotSubmitted}, nil
	}
}

// CanSubmit evaluates the requirements and the current status of userID.
func (service *Service) CanSubmit(context context.Context, userID string) (Eligibility, error) {
	user, err := service.accounts.FindByID(context, userID)
	if err != nil {
		return Eligibility{}, err
	}

	request, err := service.statusOf(context, user)
	if err != nil {
		return Eligibility{}, err
	}

	unmet := service.requirements.Unmet(user, service.now())
	return Eligibility{
		CanSubmit: len(unmet) == 0 && !request.Status.Blocks(),
		Status:    request.Status,
		Unmet:     unmet,
	}, nil
}

/*
Submit files a pending request for userID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Request: The pending request
  - error: Conflict when pending or approved, ValidationError when requirements are unmet
*/
func (service *Service) Submit(context context.Context, userID string) (*Request, error) {
	eligibility, err := service.CanSubmit(context, userID)
	if err != nil {
		return nil, err
	}
	if eligibility.Status.Blocks() {
		return nil, apperr.Conflict("Verification request already " + string(eligibility.Status))
	}
	if len(eligibility.Unmet) > 0 {
		details := make([]apperr.FieldError, 0, len(eligibility.Unmet))
		for _, field := range eligibility.Unmet {
			details = append(details, apperr.FieldError{Field: field, Message: unmetMessages[field]})
		}
		return nil, apperr.ValidationError("Verification requirements not met", details...)
	}

	request, err := service.verificationRepository.Submit(context, userID)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("verification_service_submit_failed: %w", err)
	}

	service.logger.Info("verification_submitted", slog.String("user_id", userID))
	return request, nil
}

// Review approves or rejects the pending request of userID. A rejection needs a reason.
func (service *Service) Review(context context.Context, reviewerID, userID string, approve bool, reason string) (*Request, error) {
	reason = strings.TrimSpace(reason)
	if !approve {
		if err := (&validate.Validator{}).Required("reason", reason).Err(); err != nil {
			return nil, err
		}
	}

	request, err := service.verificationRepository.Review(context, userID, approve, reason)
	if err != nil {
		return nil, err
	}

	service.logger.Info("verification_reviewed",
		slog.String("user_id", userID),
		slog.String("reviewer_id", reviewerID),
		slog.String("status", string(request.Status)),
	)
	return request, nil
}

// VerifiedUsers returns one page of verified accounts, 20 per page by default.
func (service *Service) VerifiedUsers(context context.Context, params pagination.Params) ([]*auth.User, pagination.Meta, error) {
	params = params.Normalize(VerifiedUsersLimit)

	users, total, err := service.verificationRepository.VerifiedUsers(context, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("verification_service_verified_users_failed: %w", err)
	}
	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}
